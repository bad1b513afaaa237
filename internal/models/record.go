package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is one schema-less stored item. Data is an open string-keyed map
// persisted as JSONB; the store never checks it against the owning
// resource descriptor, so drift between payload keys and declared fields
// is possible and tolerated.
type Record struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	OrganizationID uuid.UUID      `json:"organization_id" db:"organization_id"`
	ResourceType   string         `json:"resource_type" db:"resource_type"`
	Data           map[string]any `json:"data" db:"data"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
}
