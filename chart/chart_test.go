package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkdata/models"
)

func monthlyResult() *models.QueryResult {
	return &models.QueryResult{
		Columns: []string{"월", "평균기온"},
		Rows: []map[string]interface{}{
			{"월": "1월", "평균기온": -2.1},
			{"월": "2월", "평균기온": 1.3},
			{"월": "3월", "평균기온": 7.8},
		},
	}
}

func TestSelectTemporalSingleSeriesIsArea(t *testing.T) {
	chart := Select(monthlyResult(), "월별 평균기온 보여줘")

	require.NotNil(t, chart)
	assert.Equal(t, "area", chart.ChartType)
	assert.Equal(t, []string{"1월", "2월", "3월"}, chart.Labels)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, "평균기온", chart.Datasets[0].Label)
	assert.Equal(t, []float64{-2.1, 1.3, 7.8}, chart.Datasets[0].Data)
}

func TestSelectTemporalMultiSeriesIsLine(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"날짜", "매출", "비용"},
		Rows: []map[string]interface{}{
			{"날짜": "2024-01", "매출": int64(100), "비용": int64(80)},
			{"날짜": "2024-02", "매출": int64(120), "비용": int64(90)},
		},
	}

	chart := Select(result, "매출과 비용 추이")

	require.NotNil(t, chart)
	assert.Equal(t, "line", chart.ChartType)
	assert.Len(t, chart.Datasets, 2)
}

func TestSelectScaleDisparityIsCombo(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"지역", "매출액", "점포수"},
		Rows: []map[string]interface{}{
			{"지역": "서울", "매출액": 1000.0, "점포수": 5.0},
			{"지역": "부산", "매출액": 1200.0, "점포수": 4.0},
		},
	}

	chart := Select(result, "지역별 매출액과 점포수")

	require.NotNil(t, chart)
	assert.Equal(t, "combo", chart.ChartType)
	require.Len(t, chart.Datasets, 2)
	assert.Equal(t, "bar", chart.Datasets[0].Type)
	assert.Equal(t, "line", chart.Datasets[1].Type)
}

func TestSelectUserKeywordWinsOverColumnHeuristics(t *testing.T) {
	// The label column is temporal, but the user asked for a line chart.
	chart := Select(monthlyResult(), "라인 차트로 보여줘")

	require.NotNil(t, chart)
	assert.Equal(t, "line", chart.ChartType)
}

func TestSelectPieKeywordRequiresSingleSeries(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"분류", "건수", "금액"},
		Rows: []map[string]interface{}{
			{"분류": "A", "건수": 1.0, "금액": 10.0},
			{"분류": "B", "건수": 2.0, "금액": 20.0},
		},
	}

	chart := Select(result, "파이 차트로 보여줘")

	require.NotNil(t, chart)
	// Two series cannot share one pie; falls through to the column rules.
	assert.NotEqual(t, "pie", chart.ChartType)
}

func TestSelectRatioColumnIsPie(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"분류", "값"},
		Rows: []map[string]interface{}{
			{"분류": "A", "값": 30.0},
			{"분류": "B", "값": 70.0},
		},
	}

	chart := Select(result, "보여줘")

	require.NotNil(t, chart)
	assert.Equal(t, "pie", chart.ChartType)
}

func TestSelectDefaultIsBar(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"지역", "매출"},
		Rows: []map[string]interface{}{
			{"지역": "서울", "매출": 100.0},
			{"지역": "부산", "매출": 90.0},
		},
	}

	chart := Select(result, "지역별 매출")

	require.NotNil(t, chart)
	assert.Equal(t, "bar", chart.ChartType)
}

func TestSelectDropsNonNumericColumnsWhole(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"지역", "매출", "비고"},
		Rows: []map[string]interface{}{
			{"지역": "서울", "매출": 100.0, "비고": "특이사항"},
			{"지역": "부산", "매출": 90.0, "비고": "없음"},
		},
	}

	chart := Select(result, "지역별 매출")

	require.NotNil(t, chart)
	require.Len(t, chart.Datasets, 1)
	assert.Equal(t, "매출", chart.Datasets[0].Label)
}

func TestSelectMixedColumnIsDroppedNotCoerced(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"지역", "매출"},
		Rows: []map[string]interface{}{
			{"지역": "서울", "매출": 100.0},
			{"지역": "부산", "매출": "N/A"},
		},
	}

	assert.Nil(t, Select(result, "지역별 매출"))
}

func TestSelectNeedsAtLeastTwoColumns(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"매출"},
		Rows:    []map[string]interface{}{{"매출": 100.0}},
	}

	assert.Nil(t, Select(result, "매출"))
}

func TestSelectEmptyResultIsNil(t *testing.T) {
	result := &models.QueryResult{Columns: []string{"지역", "매출"}}
	assert.Nil(t, Select(result, "지역별 매출"))
}

func TestSelectDatasetsMatchLabelLength(t *testing.T) {
	chart := Select(monthlyResult(), "월별 평균기온")

	require.NotNil(t, chart)
	for _, ds := range chart.Datasets {
		assert.Len(t, ds.Data, len(chart.Labels))
	}
}

func TestSelectNilLabelBecomesEmptyString(t *testing.T) {
	result := &models.QueryResult{
		Columns: []string{"지역", "매출"},
		Rows: []map[string]interface{}{
			{"지역": nil, "매출": 100.0},
		},
	}

	chart := Select(result, "매출")

	require.NotNil(t, chart)
	assert.Equal(t, []string{""}, chart.Labels)
}

func TestSelectIsDeterministic(t *testing.T) {
	first := Select(monthlyResult(), "월별 평균기온")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Select(monthlyResult(), "월별 평균기온"))
	}
}
