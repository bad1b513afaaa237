package services

import (
	"context"

	"bizforge/internal/generator"
	"bizforge/internal/models"
	"bizforge/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProvisionService turns a free-text business description into a working
// tenant: producer output, validated, becomes an Organization, and any
// seed records are written through the generic record store.
type ProvisionService interface {
	Provision(ctx context.Context, name, description string) (*models.Organization, error)
}

type provisionService struct {
	gen        generator.ConfigGenerator
	orgSvc     OrganizationService
	recordRepo repositories.RecordRepository
}

func NewProvisionService(gen generator.ConfigGenerator, orgSvc OrganizationService, recordRepo repositories.RecordRepository) ProvisionService {
	return &provisionService{
		gen:        gen,
		orgSvc:     orgSvc,
		recordRepo: recordRepo,
	}
}

func (s *provisionService) Provision(ctx context.Context, name, description string) (*models.Organization, error) {
	generated, err := s.gen.Generate(ctx, name, description)
	if err != nil {
		// Malformed producer output is an unrecoverable request failure,
		// never a silent default.
		return nil, err
	}

	var businessType *string
	if description != "" {
		businessType = &description
	}

	org, err := s.orgSvc.Create(ctx, &CreateOrganizationRequest{
		Name:         name,
		BusinessType: businessType,
		Config:       generated.TenantConfig(),
	})
	if err != nil {
		return nil, err
	}

	// Organization creation is the commit point. Seed inserts that fail
	// are logged and skipped; a half-seeded tenant is still reachable.
	for _, res := range generated.Resources {
		for _, seed := range res.Seeds {
			record := &models.Record{
				ID:             uuid.New(),
				OrganizationID: org.ID,
				ResourceType:   res.Key,
				Data:           seed,
			}
			if err := s.recordRepo.Create(ctx, record); err != nil {
				zap.L().Warn("seed record insert failed",
					zap.String("slug", org.Slug),
					zap.String("resource", res.Key),
					zap.Error(err),
				)
			}
		}
	}

	zap.L().Info("tenant provisioned",
		zap.String("slug", org.Slug),
		zap.Int("resources", len(org.Config.Resources)),
	)
	return org, nil
}
