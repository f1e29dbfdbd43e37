package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talkdata/models"
)

type fakePool struct {
	docs map[string]*models.SuggestedQuestions
}

func newFakePool() *fakePool {
	return &fakePool{docs: map[string]*models.SuggestedQuestions{}}
}

func (p *fakePool) GetSuggestions(datasetID string) (*models.SuggestedQuestions, error) {
	return p.docs[datasetID], nil
}

func (p *fakePool) UpsertSuggestions(doc *models.SuggestedQuestions) error {
	p.docs[doc.DatasetID] = doc
	return nil
}

type fakeGenerator struct {
	calls     int
	questions []string
	err       error
}

func (g *fakeGenerator) GenerateSuggestions(ctx context.Context, meta *models.DatasetMeta) ([]string, error) {
	g.calls++
	return g.questions, g.err
}

func testMeta() *models.DatasetMeta {
	return &models.DatasetMeta{
		DatasetID: "ds-1",
		Filename:  "sales.csv",
		Columns:   []models.ColumnInfo{{Name: "지역", Type: models.ColumnString}},
	}
}

func TestGetNeverCallsGenerator(t *testing.T) {
	pool := newFakePool()
	pool.docs["ds-1"] = &models.SuggestedQuestions{
		DatasetID: "ds-1",
		Questions: []string{"q1", "q2"},
	}
	gen := &fakeGenerator{}
	svc := New(pool, gen)

	got := svc.Get(context.Background(), testMeta())

	assert.ElementsMatch(t, []string{"q1", "q2"}, got)
	assert.Equal(t, 0, gen.calls)
}

func TestGetEmptyPoolFallsBack(t *testing.T) {
	gen := &fakeGenerator{}
	svc := New(newFakePool(), gen)

	got := svc.Get(context.Background(), testMeta())

	require.Len(t, got, 4)
	assert.Equal(t, 0, gen.calls)
	// Fallbacks lean on the schema where possible.
	assert.Contains(t, got[2], "지역")
}

func TestGetSamplesAtMostFour(t *testing.T) {
	pool := newFakePool()
	pool.docs["ds-1"] = &models.SuggestedQuestions{
		DatasetID: "ds-1",
		Questions: []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"},
	}
	svc := New(pool, &fakeGenerator{})

	for i := 0; i < 10; i++ {
		got := svc.Get(context.Background(), testMeta())
		assert.Len(t, got, 4)
		seen := map[string]bool{}
		for _, q := range got {
			assert.False(t, seen[q], "sampled question repeated: %s", q)
			seen[q] = true
		}
	}
}

func TestRefreshSkipsGeneratorWhenPoolNonEmpty(t *testing.T) {
	pool := newFakePool()
	pool.docs["ds-1"] = &models.SuggestedQuestions{
		DatasetID: "ds-1",
		Questions: []string{"q1"},
	}
	gen := &fakeGenerator{questions: []string{"new1"}}
	svc := New(pool, gen)

	got, err := svc.Refresh(context.Background(), testMeta(), false)

	require.NoError(t, err)
	assert.Equal(t, []string{"q1"}, got)
	assert.Equal(t, 0, gen.calls)
}

func TestRefreshForceMergesDistinct(t *testing.T) {
	pool := newFakePool()
	pool.docs["ds-1"] = &models.SuggestedQuestions{
		DatasetID: "ds-1",
		Questions: []string{"q1", "q2"},
	}
	gen := &fakeGenerator{questions: []string{"q2", "q3", ""}}
	svc := New(pool, gen)

	_, err := svc.Refresh(context.Background(), testMeta(), true)
	require.NoError(t, err)

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, []string{"q1", "q2", "q3"}, pool.docs["ds-1"].Questions)
}

func TestRefreshEmptyPoolCallsGenerator(t *testing.T) {
	gen := &fakeGenerator{questions: []string{"q1", "q2"}}
	svc := New(newFakePool(), gen)

	got, err := svc.Refresh(context.Background(), testMeta(), false)

	require.NoError(t, err)
	assert.Equal(t, 1, gen.calls)
	assert.ElementsMatch(t, []string{"q1", "q2"}, got)
}

func TestRefreshGeneratorErrorPropagates(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("model unavailable")}
	svc := New(newFakePool(), gen)

	_, err := svc.Refresh(context.Background(), testMeta(), true)
	assert.Error(t, err)
}

func TestPoolOnlyGrows(t *testing.T) {
	pool := newFakePool()
	gen := &fakeGenerator{questions: []string{"q1", "q2"}}
	svc := New(pool, gen)

	_, err := svc.Refresh(context.Background(), testMeta(), true)
	require.NoError(t, err)

	gen.questions = []string{"q3"}
	_, err = svc.Refresh(context.Background(), testMeta(), true)
	require.NoError(t, err)

	assert.Equal(t, []string{"q1", "q2", "q3"}, pool.docs["ds-1"].Questions)
}
