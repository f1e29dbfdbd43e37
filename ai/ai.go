package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"talkdata/cache"
	"talkdata/models"
)

// Service is the text-completion collaborator. It speaks the DashScope
// text-generation API and is the only component allowed to call the model.
type Service struct {
	apiKey             string
	modelName          string
	cache              *cache.Cache
	httpClient         *http.Client
	apiURL             string
	lastRequestTime    time.Time
	requestMutex       sync.Mutex
	minRequestInterval time.Duration
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type apiRequest struct {
	Model string `json:"model"`
	Input struct {
		Messages []Message `json:"messages"`
	} `json:"input"`
}

type apiResponse struct {
	Output struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	} `json:"output"`
	RequestID string `json:"request_id,omitempty"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
}

func New(apiKey, modelName, apiURL string, cache *cache.Cache) (*Service, error) {
	return &Service{
		apiKey:             apiKey,
		modelName:          modelName,
		cache:              cache,
		httpClient:         &http.Client{Timeout: 120 * time.Second},
		apiURL:             apiURL,
		minRequestInterval: 500 * time.Millisecond,
	}, nil
}

func (a *Service) Close() error {
	// HTTP client doesn't require explicit closing
	return nil
}

// rateLimit ensures minimum time between requests to prevent burst rate errors
func (a *Service) rateLimit() {
	a.requestMutex.Lock()
	defer a.requestMutex.Unlock()

	now := time.Now()
	timeSinceLastRequest := now.Sub(a.lastRequestTime)

	if timeSinceLastRequest < a.minRequestInterval {
		time.Sleep(a.minRequestInterval - timeSinceLastRequest)
	}

	a.lastRequestTime = time.Now()
}

func (a *Service) call(ctx context.Context, messages []Message) (string, error) {
	a.rateLimit()

	reqBody := apiRequest{Model: a.modelName}
	reqBody.Input.Messages = messages

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	// Retry with exponential backoff on rate limit and transport errors
	maxRetries := 3
	baseDelay := 2 * time.Second

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[AI] retrying after %v (attempt %d/%d)", delay, attempt, maxRetries)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
			a.rateLimit()
		}

		req, err := http.NewRequestWithContext(ctx, "POST", a.apiURL, bytes.NewBuffer(jsonData))
		if err != nil {
			return "", fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", a.apiKey))
		req.Header.Set("Content-Type", "application/json")

		resp, err := a.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to send request: %w", err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			if attempt < maxRetries {
				continue
			}
			return "", fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt < maxRetries {
				continue
			}
			return "", apiError(resp.StatusCode, body)
		}

		if resp.StatusCode != http.StatusOK {
			return "", apiError(resp.StatusCode, body)
		}

		var apiResp apiResponse
		if err := json.Unmarshal(body, &apiResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal response: %w", err)
		}

		if apiResp.Code != "" && apiResp.Code != "Success" {
			return "", fmt.Errorf("API error: %s - %s", apiResp.Code, apiResp.Message)
		}

		if len(apiResp.Output.Choices) == 0 {
			return "", fmt.Errorf("no response from AI model")
		}

		return apiResp.Output.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("max retries exceeded")
}

func apiError(status int, body []byte) error {
	var errorResp struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id"`
	}
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Code != "" {
		return fmt.Errorf("API error (status %d): %s - %s (request_id: %s)",
			status, errorResp.Code, errorResp.Message, errorResp.RequestID)
	}
	return fmt.Errorf("API returned status %d: %s", status, string(body))
}

// GenerateQuery asks the model to answer a user message about the dataset.
// It sends one system message embedding the schema, at most the last 3
// conversation turns, and the user message. The returned content may or may
// not contain a fenced ```sql block; the caller extracts it.
func (a *Service) GenerateQuery(ctx context.Context, meta *models.DatasetMeta, history []models.ChatMessage, userMessage string) (string, error) {
	messages := []Message{{Role: RoleSystem, Content: BuildSystemPrompt(meta)}}

	if len(history) > 3 {
		history = history[len(history)-3:]
	}
	for _, msg := range history {
		messages = append(messages, Message{Role: msg.Role, Content: msg.Content})
	}

	messages = append(messages, Message{Role: RoleUser, Content: BuildQueryPrompt(userMessage)})

	response, err := a.call(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return response, nil
}

// GenerateSQL produces a bare SQL query for a prompt, with no conversation
// context. Used by the query-assist endpoint; results are cached since the
// same prompt against the same dataset always wants the same query.
func (a *Service) GenerateSQL(ctx context.Context, meta *models.DatasetMeta, prompt string) (string, error) {
	cacheKey := fmt.Sprintf("assist:%s:%s", meta.DatasetID, prompt)
	if cached, found := a.cache.Get(cacheKey); found {
		return cached.(string), nil
	}

	messages := []Message{
		{Role: RoleSystem, Content: BuildSystemPrompt(meta)},
		{Role: RoleUser, Content: BuildAssistPrompt(prompt)},
	}

	response, err := a.call(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate SQL: %w", err)
	}

	sql := trimFences(response, "sql", "SQL")
	if sql == "" {
		return "", fmt.Errorf("model returned no SQL query")
	}

	a.cache.SetDefault(cacheKey, sql)
	return sql, nil
}

// GenerateSuggestions asks the model for 4 candidate follow-up questions
// tied to the dataset's name and columns, returned as a JSON array.
func (a *Service) GenerateSuggestions(ctx context.Context, meta *models.DatasetMeta) ([]string, error) {
	messages := []Message{
		{Role: RoleSystem, Content: SuggestionSystemPrompt},
		{Role: RoleUser, Content: BuildSuggestionPrompt(meta)},
	}

	response, err := a.call(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate suggestions: %w", err)
	}

	raw := trimFences(response, "json", "JSON")
	var questions []string
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("invalid suggestions JSON: %w", err)
	}
	if len(questions) > 4 {
		questions = questions[:4]
	}
	return questions, nil
}

func trimFences(s string, langs ...string) string {
	out := strings.TrimSpace(s)
	for _, lang := range langs {
		out = strings.TrimPrefix(out, "```"+lang)
	}
	out = strings.TrimPrefix(out, "```")
	out = strings.TrimSuffix(out, "```")
	return strings.TrimSpace(out)
}
