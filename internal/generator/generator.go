// Package generator turns a free-text business description into a tenant
// configuration. Producer output is the one external input that crosses
// into a TenantConfig, so it is structurally validated before being
// trusted; anything malformed fails the request instead of defaulting.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bizforge/internal/config"
	"bizforge/internal/icons"
	"bizforge/internal/models"
)

// ConfigGenerator is the configuration producer contract: given a display
// name and a description, return a validated configuration or fail.
type ConfigGenerator interface {
	Generate(ctx context.Context, name, description string) (*GeneratedConfig, error)
}

// GeneratedResource is one resource as emitted by the producer: a
// descriptor plus optional seed records.
type GeneratedResource struct {
	Key           string                   `json:"key"`
	Label         string                   `json:"label"`
	SingularLabel string                   `json:"singularLabel,omitempty"`
	Icon          string                   `json:"icon,omitempty"`
	Fields        []models.FieldDescriptor `json:"fields"`
	Seeds         []map[string]any         `json:"seeds,omitempty"`
}

// GeneratedConfig is the raw producer output before it becomes a
// TenantConfig.
type GeneratedConfig struct {
	ThemeColor string              `json:"themeColor"`
	Resources  []GeneratedResource `json:"resources"`
}

// TenantConfig converts validated producer output into the stored
// configuration, normalizing icon hints through the closed registry.
func (g *GeneratedConfig) TenantConfig() models.TenantConfig {
	cfg := models.TenantConfig{ThemeColor: g.ThemeColor}
	for _, res := range g.Resources {
		cfg.Resources = append(cfg.Resources, models.ResourceDescriptor{
			Key:           res.Key,
			Label:         res.Label,
			SingularLabel: res.SingularLabel,
			Icon:          icons.Resolve(res.Icon),
			Fields:        res.Fields,
		})
	}
	return cfg
}

// Validate enforces the producer output contract: a theme color, at least
// one resource within the configured cap, 2-4 typed fields per resource,
// and bounded seed lists. Every violation is a MalformedConfig failure.
func (g *GeneratedConfig) Validate(limits config.LimitSettings) error {
	if g.ThemeColor == "" {
		return fmt.Errorf("%w: missing themeColor", models.ErrMalformedConfig)
	}
	if len(g.Resources) == 0 {
		return fmt.Errorf("%w: no resources", models.ErrMalformedConfig)
	}
	if limits.MaxResources > 0 && len(g.Resources) > limits.MaxResources {
		return fmt.Errorf("%w: %d resources exceeds limit of %d", models.ErrMalformedConfig, len(g.Resources), limits.MaxResources)
	}

	for _, res := range g.Resources {
		if len(res.Fields) < 2 || len(res.Fields) > 4 {
			return fmt.Errorf("%w: resource %q has %d fields, want 2-4", models.ErrMalformedConfig, res.Key, len(res.Fields))
		}
		if limits.MaxSeedsPerResource > 0 && len(res.Seeds) > limits.MaxSeedsPerResource {
			return fmt.Errorf("%w: resource %q has %d seeds, limit is %d", models.ErrMalformedConfig, res.Key, len(res.Seeds), limits.MaxSeedsPerResource)
		}
		for i, seed := range res.Seeds {
			if len(seed) == 0 {
				return fmt.Errorf("%w: resource %q seed %d is empty", models.ErrMalformedConfig, res.Key, i)
			}
		}
	}

	// Shared structural invariants: unique URL-safe keys, identifier
	// field names, known field types.
	tenantCfg := g.TenantConfig()
	if err := tenantCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrMalformedConfig, err)
	}
	return nil
}

// decodeGeneratedConfig parses producer text into a GeneratedConfig,
// tolerating markdown code fences around the JSON object.
func decodeGeneratedConfig(content string) (*GeneratedConfig, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var cfg GeneratedConfig
	if err := json.Unmarshal([]byte(content), &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedConfig, err)
	}
	return &cfg, nil
}
