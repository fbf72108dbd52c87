package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jarahq/jara-backend/internal/logger"
	"github.com/jarahq/jara-backend/internal/utils"
)

type AIClient interface {
	Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error)
}

type AIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AIOptions struct {
	Temperature float32
	MaxTokens   int
}

type AICompletion struct {
	Content string
}

type aiClient struct {
	httpClient *http.Client
	log        *logger.Logger
	apiKey     string
	baseURL    string
	chatModel  string
	maxRetries int
}

func NewAIClient(log *logger.Logger) (AIClient, error) {
	serviceLog := log.With("service", "AIClient")
	apiKey := utils.GetEnv("OPENAI_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com/v1", log)
	chatModel := utils.GetEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini", log)
	maxRetries := utils.GetEnvAsInt("OPENAI_MAX_RETRIES", 2, log)
	return &aiClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log:        serviceLog,
		apiKey:     apiKey,
		baseURL:    baseURL,
		chatModel:  chatModel,
		maxRetries: maxRetries,
	}, nil
}

type chatRequest struct {
	Model       string      `json:"model"`
	Messages    []AIMessage `json:"messages"`
	Temperature float32     `json:"temperature,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *aiClient) Chat(ctx context.Context, messages []AIMessage, opts *AIOptions) (*AICompletion, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("no messages given")
	}

	body := chatRequest{
		Model:    c.chatModel,
		Messages: messages,
	}
	if opts != nil {
		body.Temperature = opts.Temperature
		body.MaxTokens = opts.MaxTokens
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 2 * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		completion, retryable, err := c.doChat(ctx, payload)
		if err == nil {
			return completion, nil
		}
		lastErr = err
		if !retryable {
			break
		}
		c.log.Warn("Chat completion attempt failed", "attempt", attempt, "error", err)
	}
	return nil, lastErr
}

func (c *aiClient) doChat(ctx context.Context, payload []byte) (*AICompletion, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, true, fmt.Errorf("failed to read chat response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, true, fmt.Errorf("chat request returned status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("chat request returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, false, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if parsed.Error != nil {
		return nil, false, fmt.Errorf("chat completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, false, fmt.Errorf("chat completion returned no choices")
	}
	return &AICompletion{Content: parsed.Choices[0].Message.Content}, false, nil
}
