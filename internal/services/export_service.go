package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bizforge/internal/models"
	"bizforge/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"
)

const (
	exportBucket    = "bizforge-exports"
	exportURLExpiry = 24 * time.Hour
)

// OrganizationExport is the snapshot written to object storage: the
// organization with its current configuration plus every stored record
// grouped by resource type. Orphaned resource types (records whose type no
// longer appears in the configuration) are included so exports capture
// drift instead of hiding it.
type OrganizationExport struct {
	Organization *models.Organization        `json:"organization"`
	Records      map[string][]*models.Record `json:"records"`
	ExportedAt   time.Time                   `json:"exported_at"`
}

type ExportService interface {
	ExportOrganization(ctx context.Context, id uuid.UUID) (string, error)
}

type exportService struct {
	orgRepo    repositories.OrganizationRepository
	recordRepo repositories.RecordRepository
	objectSvc  ObjectStoreService
}

func NewExportService(orgRepo repositories.OrganizationRepository, recordRepo repositories.RecordRepository, objectSvc ObjectStoreService) ExportService {
	return &exportService{
		orgRepo:    orgRepo,
		recordRepo: recordRepo,
		objectSvc:  objectSvc,
	}
}

// ExportOrganization serializes the organization and all its records to a
// JSON object in the exports bucket and returns a presigned download URL.
func (s *exportService) ExportOrganization(ctx context.Context, id uuid.UUID) (string, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	counts, err := s.recordRepo.CountByType(ctx, org.ID)
	if err != nil {
		return "", err
	}

	export := &OrganizationExport{
		Organization: org,
		Records:      make(map[string][]*models.Record, len(counts)),
		ExportedAt:   time.Now().UTC(),
	}
	for resourceType := range counts {
		records, err := s.recordRepo.Query(ctx, org.ID, resourceType)
		if err != nil {
			return "", err
		}
		export.Records[resourceType] = records
	}

	payload, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return "", err
	}

	if err := s.objectSvc.EnsureBucketExists(ctx, exportBucket); err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("%s/%s-%s.json", org.Slug, export.ExportedAt.Format("20060102-150405"), random.String(8))
	if err := s.objectSvc.UploadObject(ctx, exportBucket, objectName, "application/json", bytes.NewReader(payload), int64(len(payload))); err != nil {
		return "", err
	}

	url, err := s.objectSvc.GetPresignedURL(exportBucket, objectName, exportURLExpiry)
	if err != nil {
		return "", err
	}

	zap.L().Info("organization exported",
		zap.String("slug", org.Slug),
		zap.String("object", objectName),
		zap.Int("resource_types", len(export.Records)),
	)
	return url, nil
}
