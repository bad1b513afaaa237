package jobs

import (
	"context"

	"bizforge/internal/models"
	"bizforge/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrphanAuditService finds records whose resource type no longer appears
// in the owning organization's configuration. Removing a resource from a
// configuration orphans its records rather than cascading a delete, so
// this audit makes the drift observable. It never deletes anything.
type OrphanAuditService struct {
	orgRepo    repositories.OrganizationRepository
	recordRepo repositories.RecordRepository
}

// OrphanReport summarizes orphaned records for one organization.
type OrphanReport struct {
	OrganizationID uuid.UUID
	Slug           string
	Orphans        map[string]int64 // resource type -> record count
}

func NewOrphanAuditService(orgRepo repositories.OrganizationRepository, recordRepo repositories.RecordRepository) *OrphanAuditService {
	return &OrphanAuditService{
		orgRepo:    orgRepo,
		recordRepo: recordRepo,
	}
}

// AuditOrganization reports record types stored under org that its current
// configuration no longer declares.
func (a *OrphanAuditService) AuditOrganization(ctx context.Context, org *models.Organization) (*OrphanReport, error) {
	counts, err := a.recordRepo.CountByType(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	report := &OrphanReport{
		OrganizationID: org.ID,
		Slug:           org.Slug,
		Orphans:        make(map[string]int64),
	}
	for resourceType, count := range counts {
		if org.Config.FindResource(resourceType) == nil {
			report.Orphans[resourceType] = count
		}
	}
	return report, nil
}

// AuditAll walks every organization and logs any orphaned record types.
func (a *OrphanAuditService) AuditAll(ctx context.Context) ([]*OrphanReport, error) {
	orgs, err := a.orgRepo.List(ctx, 1000, 0)
	if err != nil {
		zap.L().Error("orphan audit: listing organizations failed", zap.Error(err))
		return nil, err
	}

	var reports []*OrphanReport
	for _, org := range orgs {
		report, err := a.AuditOrganization(ctx, org)
		if err != nil {
			zap.L().Warn("orphan audit failed for organization",
				zap.String("slug", org.Slug), zap.Error(err))
			continue
		}
		if len(report.Orphans) > 0 {
			zap.L().Info("orphaned records detected",
				zap.String("slug", report.Slug),
				zap.Any("orphans", report.Orphans),
			)
			reports = append(reports, report)
		}
	}
	return reports, nil
}
