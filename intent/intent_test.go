package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"talkdata/models"
)

func salesMeta() *models.DatasetMeta {
	return &models.DatasetMeta{
		DatasetID: "ds-1",
		Filename:  "월별_판매실적.csv",
		Columns: []models.ColumnInfo{
			{Name: "지역", Type: models.ColumnString},
			{Name: "매출액(원)", Type: models.ColumnInteger},
			{Name: "판매일", Type: models.ColumnDate},
		},
	}
}

func TestClassify(t *testing.T) {
	meta := salesMeta()

	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"half-width question mark", "?", QuestionMark},
		{"full-width question mark", "？", QuestionMark},
		{"ideographic full stop", "。", QuestionMark},

		{"korean greeting", "안녕하세요", Irrelevant},
		{"korean greeting with question", "안녕? 뭐해?", Irrelevant},
		{"english hi", "hi", Irrelevant},
		{"english hello uppercase", "Hello", Irrelevant},
		{"thanks", "감사합니다", Irrelevant},

		{"single char", "ㅁ", Meaningless},
		{"two chars", "ㅇㅇ", Meaningless},
		{"jamo fragments", "ㅁㄴㅇㄹ", Meaningless},
		{"jamo mixed into text", "지역별 ㅁㄴㅇ", Meaningless},
		{"filler only", "음 어 음", Meaningless},
		{"symbols only", "!!! ***", Meaningless},

		{"explanation korean", "이 데이터 뭐야?", Explanation},
		{"explanation about data", "어떤 데이터인지 설명해줘", Explanation},
		{"explanation english", "what is this data", Explanation},

		{"metadata columns", "컬럼 목록 보여줘", Metadata},
		{"metadata english", "what kind of data is here", Metadata},

		{"off topic", "오늘 날씨 알려줄래", UnrelatedToData},
		{"unrelated korean", "파스타 맛집 추천해줘", UnrelatedToData},
		{"unrelated english", "recommend me a restaurant", UnrelatedToData},
		// Off-topic stays off-topic even when phrased as an explanation
		// or metadata request about something outside the dataset.
		{"off topic explanation wording", "주식 시장에 대해 설명해줘", UnrelatedToData},
		{"off topic what-is wording", "블랙홀이 뭐야?", UnrelatedToData},

		{"column reference", "지역별 매출 보여줘", Query},
		{"filename reference", "판매실적 요약해줘", Query},
		{"analysis keyword", "평균 구해줘", Query},
		{"english analysis keyword", "show the top 5 rows", Query},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, meta))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	meta := salesMeta()
	first := Classify("지역별 매출 보여줘", meta)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("지역별 매출 보여줘", meta))
	}
}

func TestClassifyNilSchemaSkipsRelevance(t *testing.T) {
	// Without a schema there is nothing to be unrelated to.
	assert.Equal(t, Query, Classify("파스타 맛집 추천해줘", nil))
	// The other rules still apply.
	assert.Equal(t, QuestionMark, Classify("?", nil))
	assert.Equal(t, Meaningless, Classify("ㅁㄴㅇㄹ", nil))
}

func TestClassifyTrimsWhitespace(t *testing.T) {
	assert.Equal(t, QuestionMark, Classify("  ?  ", salesMeta()))
}

func TestSchemaKeywords(t *testing.T) {
	kws := schemaKeywords(salesMeta())

	assert.Contains(t, kws, "판매실적")
	assert.Contains(t, kws, "지역")
	// Parenthetical qualifiers are stripped from column names.
	assert.Contains(t, kws, "매출액")
	assert.NotContains(t, kws, "원")
}

func TestIsUncomposedAcceptsEnglishWords(t *testing.T) {
	in := &input{text: "show sales", lower: "show sales", runes: []rune("show sales")}
	assert.False(t, isUncomposed(in))
}
