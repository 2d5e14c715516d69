// Package agent generates a presentation structure from a bare topic using
// an LLM. Its output goes through the same schema validation as directly
// supplied input, so downstream synthesis never sees an unvalidated graph.
package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	pres "deckgen/schema"
)

const (
	slideCountMin     = 5
	slideCountMax     = 15
	slideCountDefault = 8
)

// Logs is the logging surface the generator needs.
type Logs interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Config is the generator's explicit configuration.
type Config struct {
	APIKey    string
	BaseURL   string
	ModelName string
	MaxTokens int
	Timeout   time.Duration
}

// Generator produces validated presentation specs from topics.
type Generator struct {
	model model.ChatModel
	log   Logs
}

// NewGenerator creates the chat model and wraps it. An empty API key is a
// configuration error surfaced here, before any request is accepted.
func NewGenerator(ctx context.Context, cfg Config, log Logs) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not configured")
	}

	modelCfg := &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.ModelName,
		Timeout: cfg.Timeout,
	}
	if cfg.MaxTokens > 0 {
		maxTokens := cfg.MaxTokens
		modelCfg.MaxTokens = &maxTokens
	}
	temperature := float32(0.6)
	modelCfg.Temperature = &temperature

	chatModel, err := openai.NewChatModel(ctx, modelCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}
	return &Generator{model: chatModel, log: log}, nil
}

// ClampSlideCount bounds a requested slide count to the supported range,
// substituting the default for zero.
func ClampSlideCount(n int) int {
	if n == 0 {
		return slideCountDefault
	}
	if n < slideCountMin {
		return slideCountMin
	}
	if n > slideCountMax {
		return slideCountMax
	}
	return n
}

// GenerateStructure asks the model for a deck about topic and validates the
// result into a PresentationSpec.
func (g *Generator) GenerateStructure(ctx context.Context, topic string, slideCount int, language string) (*pres.PresentationSpec, error) {
	slideCount = ClampSlideCount(slideCount)
	g.log.Infof("generating structure for topic %q (%d slides, lang %s)", topic, slideCount, language)

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userMessage(topic, slideCount, language)},
	}

	resp, err := g.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate presentation structure: %w", err)
	}

	jsonText := extractJSON(resp.Content)
	if jsonText == "" {
		return nil, fmt.Errorf("model response contains no JSON object")
	}

	spec, err := pres.Parse([]byte(jsonText))
	if err != nil {
		return nil, fmt.Errorf("model produced an invalid structure: %w", err)
	}
	return spec, nil
}

// extractJSON pulls the outermost JSON object out of a model response,
// tolerating markdown fences and surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
