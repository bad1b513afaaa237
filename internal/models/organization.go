package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var (
	// slugPattern matches lowercase URL-safe keys ("service-slots").
	slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// identPattern matches field names usable as payload keys.
	identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

// FieldType is the closed set of primitive types a resource field can carry.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeDatetime FieldType = "datetime"
	FieldTypeSelect   FieldType = "select"
)

// ValidFieldType reports whether t is one of the supported field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeDatetime, FieldTypeSelect:
		return true
	}
	return false
}

// FieldDescriptor describes one typed, labeled attribute of a resource.
// Name doubles as the key inside a record's data payload.
type FieldDescriptor struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// ResourceDescriptor describes one data collection within a tenant's
// configuration. Key is URL-safe and unique within the configuration.
type ResourceDescriptor struct {
	Key           string            `json:"key"`
	Label         string            `json:"label"`
	SingularLabel string            `json:"singularLabel,omitempty"`
	Icon          string            `json:"icon,omitempty"`
	Fields        []FieldDescriptor `json:"fields"`
}

// TenantConfig is the declarative schema for one organization: a theme hint
// plus an ordered list of resource descriptors. It is stored as a single
// JSONB column and replaced wholesale on update.
type TenantConfig struct {
	ThemeColor string               `json:"themeColor,omitempty"`
	Resources  []ResourceDescriptor `json:"resources"`
}

// FindResource returns the descriptor whose key matches exactly, or nil.
// The resource list is small (typically under ten entries) so a linear
// scan is fine.
func (c *TenantConfig) FindResource(key string) *ResourceDescriptor {
	for i := range c.Resources {
		if c.Resources[i].Key == key {
			return &c.Resources[i]
		}
	}
	return nil
}

// Validate checks the structural invariants of a configuration: every
// resource has a URL-safe, unique key and a non-empty label, and every
// field has a unique identifier-like name and a known type. It does not
// inspect stored records.
func (c *TenantConfig) Validate() error {
	if len(c.Resources) == 0 {
		return fmt.Errorf("config has no resources")
	}
	seenKeys := make(map[string]bool, len(c.Resources))
	for _, res := range c.Resources {
		if res.Key == "" {
			return fmt.Errorf("resource with empty key")
		}
		if !slugPattern.MatchString(res.Key) {
			return fmt.Errorf("resource key %q is not URL-safe", res.Key)
		}
		if seenKeys[res.Key] {
			return fmt.Errorf("duplicate resource key %q", res.Key)
		}
		seenKeys[res.Key] = true
		if res.Label == "" {
			return fmt.Errorf("resource %q has no label", res.Key)
		}
		seenNames := make(map[string]bool, len(res.Fields))
		for _, f := range res.Fields {
			if !identPattern.MatchString(f.Name) {
				return fmt.Errorf("resource %q: field name %q is not a valid identifier", res.Key, f.Name)
			}
			if seenNames[f.Name] {
				return fmt.Errorf("resource %q: duplicate field name %q", res.Key, f.Name)
			}
			seenNames[f.Name] = true
			if !ValidFieldType(f.Type) {
				return fmt.Errorf("resource %q: field %q has unknown type %q", res.Key, f.Name, f.Type)
			}
		}
	}
	return nil
}

// Organization statuses. Organizations are never hard-deleted; they move
// between these soft states instead.
const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
	OrgStatusArchived  = "archived"
)

// Organization is one isolated tenant: identity, a globally unique slug,
// and the runtime-defined schema for its resources.
type Organization struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Slug         string       `json:"slug" db:"slug"`
	BusinessType *string      `json:"business_type,omitempty" db:"business_type"`
	Status       string       `json:"status" db:"status"`
	Config       TenantConfig `json:"config" db:"config"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}
