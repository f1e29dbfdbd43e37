// Package engine is the tabular query-engine collaborator. Each dataset
// version exposes exactly one logical table named "data"; queries are
// rewritten to the dataset's physical table location before execution.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"talkdata/config"
	"talkdata/models"

	_ "github.com/microsoft/go-mssqldb"
)

type Service struct {
	db *sql.DB
}

func New(cfg config.SQLServerConfig) (*Service, error) {
	if cfg.Server == "" || cfg.Database == "" {
		return nil, fmt.Errorf("SQL Server configuration is incomplete")
	}

	db, err := sql.Open("sqlserver", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQL Server connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		// Allow the application to start even if the engine is
		// temporarily unavailable.
		log.Printf("Warning: failed to ping SQL Server during initialization: %v", err)
	}

	return &Service{db: db}, nil
}

func buildConnectionString(cfg config.SQLServerConfig) string {
	connStr := fmt.Sprintf("server=%s;port=%s;database=%s",
		cfg.Server, cfg.Port, cfg.Database)

	if cfg.UserID != "" {
		connStr += fmt.Sprintf(";user id=%s;password=%s", cfg.UserID, cfg.Password)
	} else {
		connStr += ";trusted_connection=true"
	}

	if cfg.Encrypt {
		connStr += ";encrypt=true;TrustServerCertificate=true"
	} else {
		connStr += ";encrypt=false"
	}

	return connStr
}

func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Service) IsConnected() bool {
	if s.db == nil {
		return false
	}
	return s.db.Ping() == nil
}

var tableRefRe = regexp.MustCompile(`(?i)\b(FROM|JOIN)\s+data\b`)

// RewriteTableRefs points the logical "data" table at the dataset's
// physical location, keeping "data" as an alias so column references in the
// rest of the query still resolve.
func RewriteTableRefs(query, tableLocation string) string {
	return tableRefRe.ReplaceAllString(query, "$1 "+quoteLocation(tableLocation)+" AS data")
}

func quoteLocation(loc string) string {
	parts := strings.Split(loc, ".")
	for i, p := range parts {
		parts[i] = "[" + strings.Trim(p, "[]") + "]"
	}
	return strings.Join(parts, ".")
}

// Execute runs a query against the dataset at tableLocation and returns the
// rows with the projection's column order preserved. Scalar types are kept
// as scanned (int64/float64/bool/string) so downstream chart selection can
// tell numbers from text.
func (s *Service) Execute(ctx context.Context, tableLocation, query string) (*models.QueryResult, error) {
	if s.db == nil {
		return nil, fmt.Errorf("SQL Server connection is not initialized")
	}

	rows, err := s.db.QueryContext(ctx, RewriteTableRefs(query, tableLocation))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &models.QueryResult{Columns: columns}

	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return val
	}
}

var (
	lineCommentRe  = regexp.MustCompile(`(?m)--.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

var mutationKeywords = []string{
	"INSERT", "UPDATE", "DELETE", "DROP", "CREATE", "ALTER",
	"TRUNCATE", "REPLACE", "MERGE", "GRANT", "REVOKE",
}

var mutationRes = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(mutationKeywords))
	for i, kw := range mutationKeywords {
		res[i] = regexp.MustCompile(`\b` + kw + `\b`)
	}
	return res
}()

// ValidateSelect ensures a raw user query is a read-only projection: it must
// start with SELECT once comments are stripped and contain no mutation
// keyword.
func ValidateSelect(query string) error {
	cleaned := lineCommentRe.ReplaceAllString(query, "")
	cleaned = blockCommentRe.ReplaceAllString(cleaned, "")
	cleaned = strings.ToUpper(strings.TrimSpace(cleaned))

	if !strings.HasPrefix(cleaned, "SELECT") && !strings.HasPrefix(cleaned, "WITH") {
		return fmt.Errorf("only SELECT queries are allowed")
	}

	for i, re := range mutationRes {
		if re.MatchString(cleaned) {
			return fmt.Errorf("query contains forbidden keyword %s", mutationKeywords[i])
		}
	}
	return nil
}
