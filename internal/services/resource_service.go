package services

import (
	"context"

	"bizforge/internal/models"
	"bizforge/internal/repositories"

	"github.com/google/uuid"
)

// FieldView is the presentation projection of a field descriptor.
type FieldView struct {
	Name  string           `json:"name"`
	Label string           `json:"label"`
	Type  models.FieldType `json:"type"`
}

// ResourceConfigView is the shaped descriptor returned alongside data.
type ResourceConfigView struct {
	Label  string      `json:"label"`
	Fields []FieldView `json:"fields"`
}

// ResourceView is the combined read-path payload: the current descriptor
// plus every record flattened to {id, ...data}.
type ResourceView struct {
	Config ResourceConfigView `json:"config"`
	Data   []map[string]any   `json:"data"`
}

// ResourceService is the config-driven access layer: one generic CRUD
// surface reused for every resource of every tenant. Each call re-resolves
// the current resource descriptor, so configuration edits take effect on
// the next request without migrating stored data.
type ResourceService interface {
	Get(ctx context.Context, slug, resourceKey string) (*ResourceView, error)
	CreateRecord(ctx context.Context, slug, resourceKey string, data map[string]any) (map[string]any, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

type resourceService struct {
	orgSvc     OrganizationService
	recordRepo repositories.RecordRepository
}

func NewResourceService(orgSvc OrganizationService, recordRepo repositories.RecordRepository) ResourceService {
	return &resourceService{
		orgSvc:     orgSvc,
		recordRepo: recordRepo,
	}
}

func (s *resourceService) Get(ctx context.Context, slug, resourceKey string) (*ResourceView, error) {
	org, descriptor, err := s.resolve(ctx, slug, resourceKey)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.Query(ctx, org.ID, resourceKey)
	if err != nil {
		return nil, err
	}

	view := &ResourceView{
		Config: ResourceConfigView{
			Label:  descriptor.Label,
			Fields: make([]FieldView, 0, len(descriptor.Fields)),
		},
		Data: make([]map[string]any, 0, len(records)),
	}
	for _, f := range descriptor.Fields {
		view.Config.Fields = append(view.Config.Fields, FieldView{Name: f.Name, Label: f.Label, Type: f.Type})
	}
	for _, record := range records {
		view.Data = append(view.Data, shapeRecord(record))
	}
	return view, nil
}

// CreateRecord persists the submitted payload as-is. Payloads are not
// validated against the resource descriptor: any key/value shape is
// accepted. That trade of integrity for zero-friction dynamic resources
// is deliberate and documented, not an oversight.
func (s *resourceService) CreateRecord(ctx context.Context, slug, resourceKey string, data map[string]any) (map[string]any, error) {
	org, _, err := s.resolve(ctx, slug, resourceKey)
	if err != nil {
		return nil, err
	}

	record := &models.Record{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		ResourceType:   resourceKey,
		Data:           data,
	}
	if err := s.recordRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return shapeRecord(record), nil
}

// DeleteRecord deletes by id alone. It does not verify that the record
// belongs to the tenant or resource named in the request URL; any valid
// record id can be deleted through any tenant's endpoint. Known
// cross-tenant integrity gap, preserved rather than silently tightened.
func (s *resourceService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	return s.recordRepo.DeleteByID(ctx, id)
}

func (s *resourceService) resolve(ctx context.Context, slug, resourceKey string) (*models.Organization, *models.ResourceDescriptor, error) {
	org, err := s.orgSvc.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}

	descriptor := org.Config.FindResource(resourceKey)
	if descriptor == nil {
		return nil, nil, models.ErrResourceNotFound
	}
	return org, descriptor, nil
}

// shapeRecord flattens a record to {id, ...data}. The store-generated id
// is assigned last, so a stored field literally named "id" is overwritten
// by the record's identity in the response.
func shapeRecord(record *models.Record) map[string]any {
	out := make(map[string]any, len(record.Data)+1)
	for k, v := range record.Data {
		out[k] = v
	}
	out["id"] = record.ID
	return out
}
