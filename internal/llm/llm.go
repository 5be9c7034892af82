// Package llm sends chat prompts to a hosted language model and returns the reply text.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/lifetrack/internal/constants"
	"github.com/julianstephens/lifetrack/internal/logger"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Client completes a conversation with a single reply.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

var (
	ErrNoAPIKey   = errors.New("API key not configured")
	ErrNoChoices  = errors.New("no completion returned")
	ErrNoProvider = errors.New("unknown LLM provider")
)

// StatusError is a non-2xx response from the provider.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("LLM request failed with status %d: %s", e.Code, e.Message)
}

type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = constants.ProviderOpenAI
	}
	if c.Temperature == 0 {
		c.Temperature = constants.DefaultTemperature
	}
	if c.Timeout == 0 {
		c.Timeout = constants.DefaultHTTPTimeout
	}
	if c.Model == "" {
		switch c.Provider {
		case constants.ProviderGemini:
			c.Model = constants.DefaultGeminiModel
		default:
			c.Model = constants.DefaultOpenAIModel
		}
	}
	if c.BaseURL == "" && c.Provider == constants.ProviderOpenAI {
		c.BaseURL = constants.DefaultOpenAIBaseURL
	}
	return c
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg Config) (Client, error) {
	cfg = cfg.withDefaults()
	switch cfg.Provider {
	case constants.ProviderOpenAI:
		return NewOpenAI(cfg)
	case constants.ProviderGemini:
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoProvider, cfg.Provider)
	}
}

// Fallback tries each client in order and returns the first reply.
type Fallback []Client

func (f Fallback) Complete(ctx context.Context, messages []Message) (string, error) {
	var errs []error
	for i, c := range f {
		reply, err := c.Complete(ctx, messages)
		if err == nil {
			return reply, nil
		}
		if ctx.Err() != nil {
			return "", err
		}
		logger.Warn("LLM provider failed, trying next", "index", i, "error", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", ErrNoProvider
	}
	return "", errors.Join(errs...)
}
