package models

import "time"

// ColumnType is the semantic type of a dataset column.
type ColumnType string

const (
	ColumnString   ColumnType = "string"
	ColumnInteger  ColumnType = "integer"
	ColumnFloat    ColumnType = "float"
	ColumnDate     ColumnType = "date"
	ColumnDatetime ColumnType = "datetime"
	ColumnBoolean  ColumnType = "boolean"
)

type ColumnInfo struct {
	Name         string        `json:"name"`
	Type         ColumnType    `json:"type"`
	Nullable     bool          `json:"nullable"`
	SampleValues []interface{} `json:"sample_values,omitempty"` // at most 3
}

// DatasetMeta describes one immutable version of an uploaded dataset.
// A re-upload of the same logical file produces a new version with a new
// dataset ID; existing versions are never mutated.
type DatasetMeta struct {
	DatasetID          string       `json:"dataset_id"`
	Filename           string       `json:"filename"`
	OriginalFilename   string       `json:"original_filename,omitempty"`
	Version            int          `json:"version"`
	RowCount           int64        `json:"row_count"`
	Columns            []ColumnInfo `json:"columns"`
	TableLocation      string       `json:"table_location"`
	DateColumn         string       `json:"date_column,omitempty"`
	RecommendedPrompts []string     `json:"recommended_prompts,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

type ChatMessage struct {
	Role      string     `json:"role"` // "user" or "assistant"
	Content   string     `json:"content"`
	Timestamp time.Time  `json:"timestamp"`
	SQLQuery  string     `json:"sql_query,omitempty"`
	ChartData *ChartData `json:"chart_data,omitempty"`
}

// ChatHistory is an append-only conversation about one dataset.
type ChatHistory struct {
	ChatID    string        `json:"chat_id"`
	DatasetID string        `json:"dataset_id"`
	Title     string        `json:"title"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// QueryResult holds rows in the query's projection order. Columns must be
// preserved end-to-end; the row maps alone do not carry ordering.
type QueryResult struct {
	Columns []string                 `json:"columns"`
	Rows    []map[string]interface{} `json:"rows"`
}

type ChartDataset struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
	Type  string    `json:"type,omitempty"` // per-series kind, only set for combo charts
}

// ChartData is a render-ready chart description. Every dataset's Data has
// exactly len(Labels) entries; a ChartData with no datasets is never emitted.
type ChartData struct {
	Labels    []string       `json:"labels"`
	Datasets  []ChartDataset `json:"datasets"`
	ChartType string         `json:"chart_type"`
}

// SuggestedQuestions is the per-dataset pool of recommended follow-up
// questions. Questions is distinct and only ever grows.
type SuggestedQuestions struct {
	DatasetID string    `json:"dataset_id"`
	Questions []string  `json:"questions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatRequest struct {
	ChatID    string `json:"chat_id,omitempty"`
	DatasetID string `json:"dataset_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

type ChatResponse struct {
	ChatID             string      `json:"chat_id"`
	Message            ChatMessage `json:"message"`
	SuggestedQuestions []string    `json:"suggested_questions,omitempty"`
}

type ChatSummary struct {
	ChatID       string    `json:"chat_id"`
	DatasetID    string    `json:"dataset_id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SuggestionsRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	ForceNew  bool   `json:"force_new"`
}

type SuggestionsResponse struct {
	Questions []string `json:"questions"`
}

type QueryExecuteRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	Query     string `json:"query" binding:"required"`
}

type QueryExecuteResponse struct {
	Columns   []string        `json:"columns"`
	Rows      [][]interface{} `json:"rows"`
	TotalRows int             `json:"totalRows"`
}

type QueryAssistRequest struct {
	DatasetID string `json:"dataset_id" binding:"required"`
	Prompt    string `json:"prompt" binding:"required"`
}

type QueryAssistResponse struct {
	Query string `json:"query"`
}
