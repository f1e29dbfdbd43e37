// Package chart decides whether and how a query result should be rendered.
// Selection is deterministic: the same rows and user text always produce
// the same chart (or none).
package chart

import (
	"fmt"
	"strings"

	"talkdata/models"
)

var timePatterns = []string{
	"날짜", "일자", "월", "년", "시간", "date", "time", "month", "year", "day",
}

var ratioPatterns = []string{
	"비율", "점유", "분포", "구성", "분류", "ratio", "share", "distribution", "category",
	"건수", "개수", "수량", "count", "sum", "합계",
}

var (
	pieKeywords  = []string{"파이", "pie", "원그래프"}
	lineKeywords = []string{"라인", "line", "선", "꺾은선"}
	barKeywords  = []string{"막대", "bar", "바"}
	areaKeywords = []string{"영역", "area"}
)

// Select builds a chart from a query result, or returns nil when the result
// has no renderable numeric series. The first column supplies the labels;
// every following column whose values are all numeric becomes a dataset. A
// column with a single non-numeric value is dropped whole, never coerced.
func Select(result *models.QueryResult, userText string) *models.ChartData {
	if result == nil || len(result.Rows) == 0 || len(result.Columns) < 2 {
		return nil
	}

	labelCol := result.Columns[0]
	labels := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		labels = append(labels, stringify(row[labelCol]))
	}

	var datasets []models.ChartDataset
	for _, col := range result.Columns[1:] {
		values := make([]float64, 0, len(result.Rows))
		numeric := true
		for _, row := range result.Rows {
			v, ok := toFloat(row[col])
			if !ok {
				numeric = false
				break
			}
			values = append(values, v)
		}
		if numeric {
			datasets = append(datasets, models.ChartDataset{Label: col, Data: values})
		}
	}
	if len(datasets) == 0 {
		return nil
	}

	kind := chartType(labels, datasets, labelCol, userText)
	if kind == "combo" {
		datasets[0].Type = "bar"
		for i := 1; i < len(datasets); i++ {
			datasets[i].Type = "line"
		}
	}

	return &models.ChartData{
		Labels:    labels,
		Datasets:  datasets,
		ChartType: kind,
	}
}

// chartType applies the selection rules in priority order: explicit user
// wording, then temporal label columns, then small single-series ratio
// breakdowns, then scale-disparity combos, then bar as the fallback.
func chartType(labels []string, datasets []models.ChartDataset, labelCol, userText string) string {
	lowerText := strings.ToLower(userText)
	lowerCol := strings.ToLower(labelCol)

	if containsAny(lowerText, pieKeywords) {
		if len(datasets) == 1 {
			return "pie"
		}
	} else if containsAny(lowerText, lineKeywords) {
		return "line"
	} else if containsAny(lowerText, barKeywords) {
		return "bar"
	} else if containsAny(lowerText, areaKeywords) {
		return "area"
	}

	if containsAny(lowerCol, timePatterns) {
		if len(datasets) == 1 {
			return "area"
		}
		return "line"
	}

	if len(labels) <= 10 && len(datasets) == 1 && containsAny(lowerCol, ratioPatterns) {
		return "pie"
	}

	if len(datasets) >= 2 {
		minAvg, maxAvg := meanRange(datasets)
		if minAvg != 0 && maxAvg/minAvg > 10 {
			return "combo"
		}
	}

	return "bar"
}

func meanRange(datasets []models.ChartDataset) (min, max float64) {
	for i, ds := range datasets {
		sum := 0.0
		for _, v := range ds.Data {
			sum += v
		}
		avg := sum / float64(len(ds.Data))
		if i == 0 || avg < min {
			min = avg
		}
		if i == 0 || avg > max {
			max = avg
		}
	}
	return min, max
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
