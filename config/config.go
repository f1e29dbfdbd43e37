package config

import (
	"os"
	"strings"
)

type Config struct {
	Port          string
	APIKey        string
	ModelName     string
	APIBaseURL    string
	DBPath        string
	DatasetsDir   string
	LabelColumns  []string
	SQLServer     SQLServerConfig
}

type SQLServerConfig struct {
	Server   string
	Port     string
	Database string
	UserID   string
	Password string
	Encrypt  bool
}

func GetConfig() Config {
	return Config{
		Port:        getEnv("PORT", "9090"),
		APIKey:      getEnv("DASHSCOPE_API_KEY", ""),
		ModelName:   getEnv("DASHSCOPE_MODEL", "qwen3-max"),
		APIBaseURL:  getEnv("DASHSCOPE_API_BASE", "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"),
		DBPath:      getEnv("DB_PATH", "./data/badger"),
		DatasetsDir: getEnv("DATASETS_DIR", "./datasets"),
		// Descriptive columns the SQL repairer watches for in generated
		// GROUP BY queries (comma separated).
		LabelColumns: splitList(getEnv("LABEL_COLUMNS", "표준코드명")),
		SQLServer: SQLServerConfig{
			Server:   getEnv("SQL_SERVER", ""),
			Port:     getEnv("SQL_PORT", "1433"),
			Database: getEnv("SQL_DATABASE", ""),
			UserID:   getEnv("SQL_USER", ""),
			Password: getEnv("SQL_PASSWORD", ""),
			Encrypt:  getEnv("SQL_ENCRYPT", "true") == "true",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
