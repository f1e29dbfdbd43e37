// Package agent orchestrates a single conversation turn: classify the user's
// intent, generate and repair SQL when the question calls for it, run the
// query, and shape the answer with an optional chart.
package agent

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"talkdata/chart"
	"talkdata/intent"
	"talkdata/models"
	"talkdata/sqlfix"
)

// State marks where a turn currently is in the pipeline.
type State string

const (
	StateAnalyzing       State = "ANALYZING"
	StateGeneratingQuery State = "GENERATING_QUERY"
	StateExecuting       State = "EXECUTING"
	StateSummarizing     State = "SUMMARIZING"
	StateDone            State = "DONE"
	StateFailed          State = "FAILED"
)

// Progress receives pipeline state transitions while a turn is processed.
// Emission stops as soon as the context is cancelled.
type Progress func(state State, note string)

type LLM interface {
	GenerateQuery(ctx context.Context, meta *models.DatasetMeta, history []models.ChatMessage, userMessage string) (string, error)
}

type Engine interface {
	Execute(ctx context.Context, tableLocation, query string) (*models.QueryResult, error)
}

type Suggester interface {
	Get(ctx context.Context, meta *models.DatasetMeta) []string
	RefreshAsync(meta *models.DatasetMeta)
}

type Agent struct {
	llm     LLM
	engine  Engine
	suggest Suggester
	repair  *sqlfix.Repairer
}

func New(llm LLM, engine Engine, suggest Suggester, repair *sqlfix.Repairer) *Agent {
	return &Agent{llm: llm, engine: engine, suggest: suggest, repair: repair}
}

// Result is the outcome of one conversation turn.
type Result struct {
	Content     string
	SQL         string
	Chart       *models.ChartData
	Suggestions []string
	Intent      intent.Intent
	State       State
}

const maxPreviewRows = 5
const maxChartRows = 100

var sqlFenceRe = regexp.MustCompile("(?s)```sql\\s*\\n(.*?)```")

// Process handles one user message against a dataset. It returns a non-nil
// error only when query generation itself fails; a query that generates but
// fails to execute produces a FAILED result with the SQL attached so the
// turn can still be recorded.
func (a *Agent) Process(ctx context.Context, meta *models.DatasetMeta, history []models.ChatMessage, message string, emit Progress) (*Result, error) {
	emitState := func(state State, note string) {
		if emit == nil || ctx.Err() != nil {
			return
		}
		emit(state, note)
	}

	emitState(StateAnalyzing, "질문을 분석하고 있습니다...")
	in := intent.Classify(message, meta)
	log.Printf("[AGENT] Intent for dataset %s: %s", meta.DatasetID, in)

	switch in {
	case intent.Irrelevant:
		return a.localResult(ctx, meta, in,
			"안녕하세요! 데이터에 대해 궁금한 점을 물어보세요."), nil
	case intent.Meaningless:
		return a.localResult(ctx, meta, in,
			"질문을 이해하지 못했어요. 아래와 같은 질문을 해보시는 건 어떨까요?"), nil
	case intent.QuestionMark:
		return a.localResult(ctx, meta, in,
			"무엇이 궁금하신가요? 데이터에 대해 구체적으로 질문해 주세요."), nil
	case intent.UnrelatedToData:
		return a.localResult(ctx, meta, in,
			"죄송해요, 이 데이터와 관련된 질문만 답변할 수 있어요. 현재 데이터에 대해 질문해 주세요."), nil
	case intent.Explanation:
		return &Result{
			Content: describeDataset(meta),
			Intent:  in,
			State:   StateDone,
		}, nil
	case intent.Metadata:
		return &Result{
			Content: describeSchema(meta),
			Intent:  in,
			State:   StateDone,
		}, nil
	}

	emitState(StateGeneratingQuery, "질문에 맞는 쿼리를 생성하고 있습니다...")
	raw, err := a.llm.GenerateQuery(ctx, meta, history, message)
	if err != nil {
		return nil, fmt.Errorf("query generation failed: %w", err)
	}

	query, explanation := splitResponse(raw)
	if query == "" {
		// The model answered without a query: the question was answerable
		// (or unanswerable) from the schema alone.
		return a.finishQuery(ctx, meta, &Result{Content: raw, Intent: in, State: StateDone}), nil
	}

	if strings.Contains(strings.ToUpper(query), "GROUP BY") {
		repaired := a.repair.Repair(query)
		if repaired != query {
			log.Printf("[AGENT] Rewrote label columns in grouped query for dataset %s", meta.DatasetID)
			query = repaired
		}
	}

	if a.engine == nil {
		// SQL Server may be unconfigured; the generated SQL is still
		// recorded with the turn so the user can run it elsewhere.
		log.Printf("[AGENT] No query engine configured, cannot execute for dataset %s", meta.DatasetID)
		return a.finishQuery(ctx, meta, &Result{
			Content: "지금은 쿼리를 실행할 수 없어요. 데이터베이스 연결이 설정되지 않았습니다.",
			SQL:     query,
			Intent:  in,
			State:   StateFailed,
		}), nil
	}

	emitState(StateExecuting, "쿼리를 실행하고 있습니다...")
	result, err := a.engine.Execute(ctx, meta.TableLocation, query)
	if err != nil {
		log.Printf("[AGENT] Query execution failed for dataset %s: %v", meta.DatasetID, err)
		return a.finishQuery(ctx, meta, &Result{
			Content: "쿼리 실행 중 오류가 발생했어요. 질문을 조금 바꿔서 다시 시도해 주세요.",
			SQL:     query,
			Intent:  in,
			State:   StateFailed,
		}), nil
	}

	emitState(StateSummarizing, "결과를 정리하고 있습니다...")
	res := &Result{
		Content: formatAnswer(explanation, result),
		SQL:     query,
		Intent:  in,
		State:   StateDone,
	}
	if len(result.Rows) > 0 && len(result.Rows) <= maxChartRows && len(result.Columns) >= 2 {
		res.Chart = chart.Select(result, message)
	}
	return a.finishQuery(ctx, meta, res), nil
}

// finishQuery closes out a query-path turn: attach the current suggestion
// pool to the result and kick off a background refresh, regardless of how
// the turn ended.
func (a *Agent) finishQuery(ctx context.Context, meta *models.DatasetMeta, res *Result) *Result {
	if a.suggest != nil {
		res.Suggestions = a.suggest.Get(ctx, meta)
		a.suggest.RefreshAsync(meta)
	}
	return res
}

// localResult answers without touching the language model or the engine,
// attaching suggestions so the user has somewhere to go next.
func (a *Agent) localResult(ctx context.Context, meta *models.DatasetMeta, in intent.Intent, content string) *Result {
	res := &Result{Content: content, Intent: in, State: StateDone}
	if a.suggest != nil {
		res.Suggestions = a.suggest.Get(ctx, meta)
	}
	return res
}

// splitResponse pulls the fenced SQL block out of a model response and
// returns it alongside the explanation text that surrounds it.
func splitResponse(raw string) (query, explanation string) {
	m := sqlFenceRe.FindStringSubmatchIndex(raw)
	if m == nil {
		return "", raw
	}
	query = strings.TrimSpace(raw[m[2]:m[3]])
	explanation = strings.TrimSpace(raw[:m[0]] + " " + raw[m[1]:])
	return query, explanation
}

func formatAnswer(explanation string, result *models.QueryResult) string {
	var b strings.Builder

	if len([]rune(explanation)) < 10 {
		explanation = "요청하신 내용을 조회했어요."
	}
	b.WriteString(explanation)
	b.WriteString("\n\n")

	if len(result.Rows) == 0 {
		b.WriteString("조회된 데이터가 없습니다.")
		return b.String()
	}

	writePreviewTable(&b, result)
	b.WriteString(fmt.Sprintf("\n총 %d건의 데이터가 조회되었습니다.", len(result.Rows)))
	return b.String()
}

func writePreviewTable(b *strings.Builder, result *models.QueryResult) {
	b.WriteString("| " + strings.Join(result.Columns, " | ") + " |\n")
	sep := make([]string, len(result.Columns))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString("| " + strings.Join(sep, " | ") + " |\n")

	limit := len(result.Rows)
	if limit > maxPreviewRows {
		limit = maxPreviewRows
	}
	for _, row := range result.Rows[:limit] {
		cells := make([]string, len(result.Columns))
		for i, col := range result.Columns {
			cells[i] = formatCell(row[col])
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if remaining := len(result.Rows) - limit; remaining > 0 {
		b.WriteString(fmt.Sprintf("\n...외 %d건\n", remaining))
	}
}

func formatCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case float32:
		return formatCell(float64(val))
	default:
		return fmt.Sprintf("%v", val)
	}
}

func describeDataset(meta *models.DatasetMeta) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("이 데이터는 '%s' 파일에서 만들어졌고, 총 %d개의 행과 %d개의 컬럼으로 구성되어 있어요.\n\n",
		meta.OriginalFilename, meta.RowCount, len(meta.Columns)))

	b.WriteString("주요 컬럼과 예시 값은 다음과 같습니다:\n")
	for _, col := range meta.Columns {
		if len(col.SampleValues) > 0 {
			samples := make([]string, len(col.SampleValues))
			for i, v := range col.SampleValues {
				samples[i] = formatCell(v)
			}
			b.WriteString(fmt.Sprintf("- %s (%s): 예) %s\n", col.Name, col.Type, strings.Join(samples, ", ")))
		} else {
			b.WriteString(fmt.Sprintf("- %s (%s)\n", col.Name, col.Type))
		}
	}
	return b.String()
}

func describeSchema(meta *models.DatasetMeta) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("데이터 정보입니다.\n\n- 파일명: %s\n- 행 수: %d\n- 컬럼 수: %d\n\n컬럼 목록:\n",
		meta.OriginalFilename, meta.RowCount, len(meta.Columns)))
	for _, col := range meta.Columns {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", col.Name, col.Type))
	}
	if meta.DateColumn != "" {
		b.WriteString(fmt.Sprintf("\n날짜 기준 컬럼: %s\n", meta.DateColumn))
	}
	return b.String()
}
