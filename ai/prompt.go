package ai

import (
	"fmt"
	"strings"

	"talkdata/models"
)

// BuildSystemPrompt embeds the dataset schema and the SQL formatting rules
// the model has to follow. Column names are listed verbatim so the model
// copies them instead of guessing.
func BuildSystemPrompt(meta *models.DatasetMeta) string {
	var b strings.Builder
	b.WriteString("당신은 데이터 분석 전문가입니다. 사용자의 질문에 대해 SQL 쿼리를 생성하고 결과를 분석하여 답변합니다.\n\n")
	b.WriteString("선택하신 데이터 정보:\n")
	b.WriteString(fmt.Sprintf("- 파일명: %s\n", meta.Filename))
	b.WriteString(fmt.Sprintf("- 전체 행 수: %d개\n", meta.RowCount))
	b.WriteString("- 컬럼 정보:\n")
	for _, col := range meta.Columns {
		sample := ""
		if len(col.SampleValues) > 0 {
			max := 2
			if len(col.SampleValues) < max {
				max = len(col.SampleValues)
			}
			sample = fmt.Sprintf(" (샘플: %v)", col.SampleValues[:max])
		}
		b.WriteString(fmt.Sprintf("- %s: %s%s\n", col.Name, col.Type, sample))
	}

	b.WriteString("\n사용 가능한 컬럼명 (이 컬럼들만 사용 가능):\n")
	for i, col := range meta.Columns {
		b.WriteString(fmt.Sprintf("  %d. \"%s\"\n", i+1, col.Name))
	}

	exampleCols := make([]string, 0, 3)
	for i, col := range meta.Columns {
		if i >= 3 {
			break
		}
		exampleCols = append(exampleCols, fmt.Sprintf("\"%s\"", col.Name))
	}

	b.WriteString("\nSQL 작성 규칙:\n")
	b.WriteString("1. 모든 SQL 쿼리는 \"data\" 테이블을 사용합니다.\n")
	b.WriteString("2. 컬럼명은 반드시 위 리스트에서 정확히 복사하여 큰따옴표(\")로 감싸야 합니다.\n")
	b.WriteString(fmt.Sprintf("3. 예시: SELECT %s FROM data LIMIT 10\n", strings.Join(exampleCols, ", ")))
	b.WriteString("4. 절대로 컬럼명을 추측하거나 변형하지 마세요. 컬럼명에 괄호가 있으면 괄호까지 정확히 포함해야 합니다.\n")
	b.WriteString("5. 집계 함수 사용 시 별칭은 \"함수명_원본컬럼명\" 형식을 사용합니다. (예: AVG(\"온도(섭씨)\") AS \"평균_온도(섭씨)\")\n")
	b.WriteString("6. 일자/시간 컬럼이 있으면 반드시 기준으로 사용합니다. (GROUP BY \"날짜\", \"월\" 등)\n")
	b.WriteString("7. 사용자가 요청한 컬럼이 리스트에 없으면 \"해당 컬럼이 데이터에 없습니다\"라고 답변하세요.\n")
	b.WriteString("8. SQL 쿼리는 ```sql ``` 코드 블록으로 작성합니다.\n")
	b.WriteString("9. 답변은 한국어로 작성하며, \"데이터베이스에서\" 같은 기술적 표현 대신 \"선택하신 데이터를 살펴본 결과\" 등 자연스러운 표현을 사용합니다.\n")
	b.WriteString("10. 사용자의 질문이 모호하면 어떤 컬럼에 대한 질문인지 명확히 물어봅니다.\n")

	return b.String()
}

// BuildQueryPrompt wraps the user's message with the answer-shape contract:
// one fenced SQL block first, then the user-facing explanation. The query
// result is appended by the system, not by the model.
func BuildQueryPrompt(userMessage string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("사용자 질문: %s\n\n", userMessage))
	b.WriteString("다음 순서로 답변해주세요:\n")
	b.WriteString("1. 먼저 SQL 쿼리를 ```sql ``` 코드 블록으로 작성\n")
	b.WriteString("2. 그 다음 사용자에게 보낼 자연스러운 답변 작성 (SQL 실행 결과는 시스템이 자동으로 추가합니다)\n\n")
	b.WriteString("질문이 모호하거나 SQL로 답할 수 없으면 쿼리 없이 답변만 작성하세요.")
	return b.String()
}

func BuildAssistPrompt(prompt string) string {
	return fmt.Sprintf("다음 질문에 대한 SQL 쿼리를 생성해주세요. SQL 쿼리만 반환하고 설명은 생략하세요: %s", prompt)
}

const SuggestionSystemPrompt = `당신은 데이터 분석 전문가입니다. 데이터의 특성을 파악하여 실행 가능한 구체적 분석 질문을 생성합니다.

절대 생성하지 말아야 할 질문 유형:
- "어떤 의미로 질문하신 걸까요?"
- "이 데이터에는 어떤 정보가 있나요?"
- "데이터를 요약해주세요"

반드시 생성해야 할 질문 유형:
- 특정 컬럼의 집계값 (평균, 합계, 최대, 최소)
- 시간/카테고리별 그룹 분석
- 조건 필터링 및 비교
- 추세 및 패턴 분석`

// BuildSuggestionPrompt asks for 4 concrete, immediately executable
// questions grounded in the dataset's file and column names.
func BuildSuggestionPrompt(meta *models.DatasetMeta) string {
	var b strings.Builder
	b.WriteString("다음 데이터에 대해 사용자가 물어볼 만한 유용한 질문 4개를 생성해주세요.\n\n")
	b.WriteString(fmt.Sprintf("파일명: %s\n", meta.Filename))
	b.WriteString(fmt.Sprintf("행 수: %d\n", meta.RowCount))
	b.WriteString("컬럼 정보:\n")
	for _, col := range meta.Columns {
		b.WriteString(fmt.Sprintf("- %s (%s)\n", col.Name, col.Type))
	}
	b.WriteString("\n요구사항:\n")
	b.WriteString("1. 각 질문은 SQL로 즉시 실행 가능해야 함\n")
	b.WriteString("2. 파일명과 컬럼명을 직접 활용한 구체적 질문\n")
	b.WriteString("3. 집계, 필터링, 그룹화, 비교 등 다양한 분석 유형 포함\n")
	b.WriteString("4. 한국어로 작성, JSON 배열 형식: [\"질문1\", \"질문2\", \"질문3\", \"질문4\"]\n")
	b.WriteString("5. JSON 배열만 반환하고 다른 텍스트는 포함하지 마세요.\n")
	return b.String()
}
