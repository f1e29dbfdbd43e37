// Package intent triages raw user text before any model call is made.
// Classification is a flat, ordered rule list: each rule is a predicate
// paired with the intent it yields, evaluated left to right, first match
// wins. Keeping the policy as data makes each rule testable on its own.
package intent

import (
	"regexp"
	"strings"
	"unicode"

	"talkdata/models"
)

type Intent string

const (
	Irrelevant      Intent = "irrelevant"
	Meaningless     Intent = "meaningless"
	QuestionMark    Intent = "question_mark"
	UnrelatedToData Intent = "unrelated_to_data"
	Explanation     Intent = "explanation"
	Metadata        Intent = "metadata"
	Query           Intent = "query"
)

// input carries the precomputed views of the message the rules share.
type input struct {
	text  string
	lower string
	runes []rune
	meta  *models.DatasetMeta
}

type rule struct {
	match  func(*input) bool
	intent Intent
}

// Bare question-mark glyphs the UI sees in practice (half-width, full-width,
// and the ideographic full stop users hit by accident on Korean keyboards).
var questionMarkGlyphs = []string{"?", "？", "。"}

// Greeting / small-talk openers. Checked before the length rule so that
// "hi" and friends read as small talk rather than noise.
var greetingPrefixes = []string{
	"안녕", "헬로", "하이", "하위", "ㅎㅇ",
	"어때", "어떄", "잘지내", "뭐해", "밥먹",
	"좋은", "감사", "고마워", "ㄱㅅ", "ㄳ",
}

var greetingExact = []string{"hi", "hello", "hey", "yo"}

// Analysis vocabulary that marks a message as aimed at the data even when it
// names no column. Korean first (product language), English alongside. Words
// that refer to the dataset itself (데이터, 컬럼, ...) count as on-topic so
// that explanation and metadata questions survive the relevance gate.
var analysisKeywords = []string{
	"평균", "최대", "최소", "합계", "개수", "분포", "추이", "비교", "분석", "조회", "검색",
	"몇", "얼마", "언제", "어디", "어떤", "총", "전체", "상위", "하위", "많은", "적은",
	"높은", "낮은", "크", "작", "증가", "감소", "변화", "차이",
	"데이터", "정보", "컬럼", "필드", "항목",
	"average", "avg", "max", "min", "sum", "count", "distribution", "trend",
	"compare", "when", "where", "how many", "top", "bottom", "increase", "decrease",
	"data", "column", "field",
}

var explanationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`이건?\s*뭐`),
	regexp.MustCompile(`이게?\s*뭔`),
	regexp.MustCompile(`저건?\s*뭔`),
	regexp.MustCompile(`뭐야\??$`),
	regexp.MustCompile(`뭔지\??$`),
	regexp.MustCompile(`어떤\s*데이터`),
	regexp.MustCompile(`어떤\s*정보`),
	regexp.MustCompile(`설명`),
	regexp.MustCompile(`알려줘`),
	regexp.MustCompile(`뭘까`),
	regexp.MustCompile(`what is this`),
	regexp.MustCompile(`what'?s this`),
	regexp.MustCompile(`explain`),
	regexp.MustCompile(`tell me about`),
}

var metadataKeywords = []string{
	"컬럼", "열", "필드", "데이터 종류", "어떤 정보",
	"column", "field", "what kind of data",
}

var composedWordRe = regexp.MustCompile(`[가-힣]{2,}|[a-zA-Z]{2,}`)

var keywordTokenRe = regexp.MustCompile(`[가-힣a-z0-9]+`)

var parentheticalRe = regexp.MustCompile(`\([^)]*\)`)

// Relevance runs before the explanation and metadata rules: an off-topic
// message stays off-topic no matter how it is phrased ("주식 시장에 대해
// 설명해줘" is unrelated, not an explanation request).
var rules = []rule{
	{isQuestionMark, QuestionMark},
	{isGreeting, Irrelevant},
	{isTooShort, Meaningless},
	{isUncomposed, Meaningless},
	{isUnrelated, UnrelatedToData},
	{isExplanation, Explanation},
	{isMetadata, Metadata},
}

// Classify assigns an intent to text. meta may be nil (e.g. for SQL-assist
// checks before a dataset is resolved); the schema-relevance rule is then
// skipped. Classify is pure and always resolves to a category — the default
// is Query.
func Classify(text string, meta *models.DatasetMeta) Intent {
	trimmed := strings.TrimSpace(text)
	in := &input{
		text:  trimmed,
		lower: strings.ToLower(trimmed),
		runes: []rune(trimmed),
		meta:  meta,
	}
	for _, r := range rules {
		if r.match(in) {
			return r.intent
		}
	}
	return Query
}

func isQuestionMark(in *input) bool {
	for _, g := range questionMarkGlyphs {
		if in.text == g {
			return true
		}
	}
	return false
}

func isGreeting(in *input) bool {
	for _, g := range greetingExact {
		if in.lower == g {
			return true
		}
	}
	for _, p := range greetingPrefixes {
		if strings.HasPrefix(in.lower, p) {
			return true
		}
	}
	return false
}

func isTooShort(in *input) bool {
	return len(in.runes) <= 2
}

// isUncomposed rejects input the model could never turn into a query:
// isolated Korean jamo (자음/모음 fragments that form no syllable), either
// making up the whole message or appearing anywhere in it, and messages of
// three or more characters containing no composed word at all.
func isUncomposed(in *input) bool {
	filler := true
	for _, r := range in.runes {
		if isJamo(r) {
			return true
		}
		if !isFiller(r) && !unicode.IsSpace(r) {
			filler = false
		}
	}
	if filler && len(in.runes) > 0 {
		return true
	}
	if len(in.runes) >= 3 && !composedWordRe.MatchString(in.text) {
		return true
	}
	return false
}

// Hesitation fillers: a message of nothing but these carries no query.
func isFiller(r rune) bool {
	return r == '아' || r == '어' || r == '음' || r == '으'
}

// Hangul compatibility jamo block: ㄱ..ㅎ, ㅏ..ㅣ.
func isJamo(r rune) bool {
	return r >= 0x3131 && r <= 0x3163
}

func isUnrelated(in *input) bool {
	if in.meta == nil {
		return false
	}
	for _, kw := range schemaKeywords(in.meta) {
		if strings.Contains(in.lower, kw) {
			return false
		}
	}
	for _, kw := range analysisKeywords {
		if strings.Contains(in.lower, kw) {
			return false
		}
	}
	return true
}

// schemaKeywords extracts tokens of length >= 2 from the dataset's display
// name (extension dropped) and from each column name with parenthetical
// qualifiers stripped.
func schemaKeywords(meta *models.DatasetMeta) []string {
	var keywords []string
	base := meta.Filename
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	for _, tok := range keywordTokenRe.FindAllString(strings.ToLower(base), -1) {
		if len([]rune(tok)) >= 2 {
			keywords = append(keywords, tok)
		}
	}
	for _, col := range meta.Columns {
		clean := parentheticalRe.ReplaceAllString(strings.ToLower(col.Name), "")
		for _, tok := range keywordTokenRe.FindAllString(clean, -1) {
			if len([]rune(tok)) >= 2 {
				keywords = append(keywords, tok)
			}
		}
	}
	return keywords
}

func isExplanation(in *input) bool {
	for _, re := range explanationPatterns {
		if re.MatchString(in.lower) {
			return true
		}
	}
	return false
}

func isMetadata(in *input) bool {
	for _, kw := range metadataKeywords {
		if strings.Contains(in.lower, kw) {
			return true
		}
	}
	return false
}
