package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkdata/cache"
	"talkdata/models"
)

func testMeta() *models.DatasetMeta {
	return &models.DatasetMeta{
		DatasetID: "ds-1",
		Filename:  "sales.csv",
		RowCount:  100,
		Columns: []models.ColumnInfo{
			{Name: "지역", Type: models.ColumnString},
			{Name: "매출액", Type: models.ColumnInteger},
		},
	}
}

// newTestService points a Service at a fake completion endpoint with rate
// limiting disabled.
func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := New("test-key", "test-model", server.URL, cache.New())
	require.NoError(t, err)
	svc.minRequestInterval = 0
	return svc
}

func completionHandler(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": RoleAssistant, "content": content}},
				},
			},
			"request_id": "req-test",
		})
	}
}

func TestGenerateSQLTrimsFences(t *testing.T) {
	svc := newTestService(t, completionHandler("```sql\nSELECT \"지역\" FROM data\n```"))

	sql, err := svc.GenerateSQL(context.Background(), testMeta(), "지역 목록")

	require.NoError(t, err)
	assert.Equal(t, `SELECT "지역" FROM data`, sql)
}

func TestGenerateSQLCachesByDatasetAndPrompt(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		completionHandler("SELECT 1 FROM data")(w, r)
	})

	meta := testMeta()
	for i := 0; i < 3; i++ {
		_, err := svc.GenerateSQL(context.Background(), meta, "지역 목록")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)

	// A different prompt misses the cache.
	_, err := svc.GenerateSQL(context.Background(), meta, "매출 합계")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGenerateSQLRejectsEmptyResponse(t *testing.T) {
	svc := newTestService(t, completionHandler("```sql\n```"))

	_, err := svc.GenerateSQL(context.Background(), testMeta(), "지역 목록")
	assert.Error(t, err)
}

func TestGenerateSuggestionsParsesJSONArray(t *testing.T) {
	svc := newTestService(t, completionHandler("```json\n[\"질문1\", \"질문2\", \"질문3\", \"질문4\"]\n```"))

	questions, err := svc.GenerateSuggestions(context.Background(), testMeta())

	require.NoError(t, err)
	assert.Equal(t, []string{"질문1", "질문2", "질문3", "질문4"}, questions)
}

func TestGenerateSuggestionsCapsAtFour(t *testing.T) {
	svc := newTestService(t, completionHandler(`["q1","q2","q3","q4","q5","q6"]`))

	questions, err := svc.GenerateSuggestions(context.Background(), testMeta())

	require.NoError(t, err)
	assert.Len(t, questions, 4)
}

func TestGenerateSuggestionsRejectsNonJSON(t *testing.T) {
	svc := newTestService(t, completionHandler("추천 질문: 지역별 매출은?"))

	_, err := svc.GenerateSuggestions(context.Background(), testMeta())
	assert.Error(t, err)
}

func TestCallSurfacesAPIErrorEnvelope(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":"InvalidParameter","message":"model not found","request_id":"req-1"}`)
	})

	_, err := svc.GenerateSQL(context.Background(), testMeta(), "지역 목록")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "InvalidParameter")
	assert.Contains(t, err.Error(), "req-1")
}

func TestCallRejectsErrorCodeInBody(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"code":"Throttling","message":"requests throttled"}`)
	})

	_, err := svc.GenerateSQL(context.Background(), testMeta(), "지역 목록")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Throttling")
}

func TestGenerateQuerySendsSchemaAndBoundedHistory(t *testing.T) {
	var captured apiRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		completionHandler("답변입니다")(w, r)
	})

	history := make([]models.ChatMessage, 10)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history[i] = models.ChatMessage{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	_, err := svc.GenerateQuery(context.Background(), testMeta(), history, "지역별 매출 보여줘")
	require.NoError(t, err)

	// system + last 3 history messages + the new user message
	require.Len(t, captured.Input.Messages, 5)
	assert.Equal(t, RoleSystem, captured.Input.Messages[0].Role)
	assert.Contains(t, captured.Input.Messages[0].Content, "지역")
	assert.Equal(t, "turn 7", captured.Input.Messages[1].Content)
	assert.Contains(t, captured.Input.Messages[4].Content, "지역별 매출 보여줘")
	assert.Equal(t, "test-model", captured.Model)
}

func TestTrimFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```sql\nSELECT 1\n```", "SELECT 1"},
		{"```\nSELECT 1\n```", "SELECT 1"},
		{"SELECT 1", "SELECT 1"},
		{"  SELECT 1  ", "SELECT 1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, trimFences(tt.in, "sql", "SQL"))
	}
}
