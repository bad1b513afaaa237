package generator

import (
	"context"
	"fmt"

	"bizforge/internal/config"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

const systemPrompt = `You design back-office configurations for small businesses.
You must respond with ONLY a valid JSON object of this shape:

{
  "themeColor": "<one of: emerald, slate, indigo, amber, rose, sky>",
  "resources": [
    {
      "key": "<lowercase url-safe plural, e.g. "speakers">",
      "label": "<plural display label>",
      "singularLabel": "<singular display label>",
      "icon": "<one word icon hint, e.g. users, calendar, wrench>",
      "fields": [
        {"name": "<identifier>", "label": "<display label>", "type": "<text|number|date|datetime|select>"}
      ],
      "seeds": [{"<field name>": "<sample value>"}]
    }
  ]
}

Rules: 1-6 resources, each with 2-4 fields. 0-5 seed records per resource
using only the declared field names. Do not include any text outside the
JSON object. No markdown, no explanation.`

// AnthropicGenerator produces tenant configurations with the Anthropic
// Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	cfg    *config.GeneratorConfig
}

func NewAnthropicGenerator(apiKey string, cfg *config.GeneratorConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		cfg:    cfg,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, name, description string) (*GeneratedConfig, error) {
	prompt := fmt.Sprintf("Business name: %s\nDescription: %s\n\nDesign the back-office configuration for this business.", name, description)

	maxTokens := g.cfg.Producer.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.cfg.Producer.Model),
		MaxTokens: maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if g.cfg.Producer.Temperature > 0 {
		params.Temperature = anthropic.Float(g.cfg.Producer.Temperature)
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic generate: %w", err)
	}

	content := ""
	for _, block := range resp.Content {
		if block.Type == "text" {
			content += block.Text
		}
	}

	generated, err := decodeGeneratedConfig(content)
	if err != nil {
		zap.L().Warn("producer returned undecodable config",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}
	if err := generated.Validate(g.cfg.Limits); err != nil {
		zap.L().Warn("producer returned invalid config",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, err
	}

	return generated, nil
}
