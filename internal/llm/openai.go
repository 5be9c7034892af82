package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/julianstephens/lifetrack/internal/logger"
)

type OpenAI struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewOpenAI(cfg Config) (*OpenAI, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	return &OpenAI{
		apiKey:      cfg.APIKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Complete posts messages to /v1/chat/completions. Failures are not retried.
func (c *OpenAI) Complete(ctx context.Context, messages []Message) (string, error) {
	start := time.Now()
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages, Temperature: c.temperature})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var out chatResponse
	decodeErr := json.Unmarshal(data, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if decodeErr == nil && out.Error != nil && out.Error.Message != "" {
			msg = out.Error.Message
		}
		logger.Error("OpenAI request failed", "status", resp.StatusCode, "model", c.model)
		return "", &StatusError{Code: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to parse response: %w", decodeErr)
	}
	if len(out.Choices) == 0 {
		return "", ErrNoChoices
	}

	logger.Debug("OpenAI completion", "model", c.model, "elapsed", time.Since(start))
	return out.Choices[0].Message.Content, nil
}
