// Package suggest maintains the pool of recommended questions per dataset.
// Reads are always served from the persisted pool; the language model is only
// consulted when the pool needs to grow.
package suggest

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"talkdata/models"
)

const sampleSize = 4

// Generator produces candidate questions for a dataset schema.
type Generator interface {
	GenerateSuggestions(ctx context.Context, meta *models.DatasetMeta) ([]string, error)
}

// Pool persists suggestion documents.
type Pool interface {
	GetSuggestions(datasetID string) (*models.SuggestedQuestions, error)
	UpsertSuggestions(doc *models.SuggestedQuestions) error
}

type Service struct {
	pool      Pool
	generator Generator

	mu   sync.Mutex
	rand *rand.Rand
}

func New(pool Pool, generator Generator) *Service {
	return &Service{
		pool:      pool,
		generator: generator,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get returns up to four questions for the dataset without ever calling the
// language model. An empty or unreadable pool falls back to generic
// schema-derived questions so the response is never empty.
func (s *Service) Get(ctx context.Context, meta *models.DatasetMeta) []string {
	doc, err := s.pool.GetSuggestions(meta.DatasetID)
	if err != nil {
		log.Printf("[SUGGEST] Failed to read suggestion pool for %s: %v", meta.DatasetID, err)
	}
	if doc == nil || len(doc.Questions) == 0 {
		return fallbackQuestions(meta)
	}
	return s.sample(doc.Questions)
}

// Refresh tops up the dataset's suggestion pool. With force=false an already
// populated pool is served as-is; force=true always asks the language model
// and merges the new questions into the pool.
func (s *Service) Refresh(ctx context.Context, meta *models.DatasetMeta, force bool) ([]string, error) {
	doc, err := s.pool.GetSuggestions(meta.DatasetID)
	if err != nil {
		return nil, fmt.Errorf("failed to read suggestion pool: %w", err)
	}
	if doc == nil {
		doc = &models.SuggestedQuestions{
			DatasetID: meta.DatasetID,
			CreatedAt: time.Now(),
		}
	}

	if !force && len(doc.Questions) > 0 {
		return s.sample(doc.Questions), nil
	}

	generated, err := s.generator.GenerateSuggestions(ctx, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	doc.Questions = mergeDistinct(doc.Questions, generated)
	doc.UpdatedAt = time.Now()
	if err := s.pool.UpsertSuggestions(doc); err != nil {
		return nil, fmt.Errorf("failed to store suggestion pool: %w", err)
	}

	return s.sample(doc.Questions), nil
}

// RefreshAsync tops up the pool in the background. Failures are logged and
// swallowed since the caller has already been answered.
func (s *Service) RefreshAsync(meta *models.DatasetMeta) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.Refresh(ctx, meta, false); err != nil {
			log.Printf("[SUGGEST] Background refresh failed for %s: %v", meta.DatasetID, err)
		}
	}()
}

func (s *Service) sample(questions []string) []string {
	if len(questions) <= sampleSize {
		out := make([]string, len(questions))
		copy(out, questions)
		return out
	}

	s.mu.Lock()
	perm := s.rand.Perm(len(questions))
	s.mu.Unlock()

	out := make([]string, 0, sampleSize)
	for _, i := range perm[:sampleSize] {
		out = append(out, questions[i])
	}
	return out
}

func mergeDistinct(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, q := range existing {
		if q != "" && !seen[q] {
			seen[q] = true
			merged = append(merged, q)
		}
	}
	for _, q := range incoming {
		if q != "" && !seen[q] {
			seen[q] = true
			merged = append(merged, q)
		}
	}
	return merged
}

func fallbackQuestions(meta *models.DatasetMeta) []string {
	questions := []string{
		"이 데이터의 전체 행 수는 몇 개인가요?",
		"어떤 컬럼들이 있는지 알려주세요",
	}
	if len(meta.Columns) > 0 {
		first := meta.Columns[0].Name
		questions = append(questions,
			fmt.Sprintf("%s 기준으로 데이터를 요약해주세요", first),
			fmt.Sprintf("%s별 분포를 보여주세요", first),
		)
	} else {
		questions = append(questions,
			"데이터의 주요 특징을 요약해주세요",
			"최근 데이터 5건을 보여주세요",
		)
	}
	return questions
}
