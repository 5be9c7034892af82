package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/julianstephens/lifetrack/internal/logger"
)

type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: cfg.Model, temperature: float32(cfg.Temperature)}, nil
}

// Complete sends system messages as the system instruction and the rest as the conversation.
func (g *Gemini) Complete(ctx context.Context, messages []Message) (string, error) {
	system, contents := toGemini(messages)
	config := &genai.GenerateContentConfig{Temperature: genai.Ptr(g.temperature)}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		logger.Error("Gemini request failed", "model", g.model, "error", err)
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}
	text := result.Text()
	if text == "" {
		return "", ErrNoChoices
	}
	return text, nil
}

func toGemini(messages []Message) (string, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			system = append(system, m.Content)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
