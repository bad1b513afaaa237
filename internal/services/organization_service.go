package services

import (
	"context"
	"errors"
	"time"

	"bizforge/internal/caching"
	"bizforge/internal/common"
	"bizforge/internal/models"
	"bizforge/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// orgCacheTTL bounds staleness only for reads that race an external writer
// touching the table directly; in-process updates invalidate synchronously.
const orgCacheTTL = 5 * time.Minute

// CreateOrganizationRequest carries the inputs for registering a tenant.
// Slug is derived from Name when empty.
type CreateOrganizationRequest struct {
	Name         string
	Slug         string
	BusinessType *string
	Config       models.TenantConfig
}

// UpdateOrganizationRequest replaces whichever fields are present. A
// malformed Config is accepted as-is; structural validation happens only
// at the producer boundary.
type UpdateOrganizationRequest struct {
	ID     uuid.UUID
	Name   *string
	Slug   *string
	Config *models.TenantConfig
}

type OrganizationService interface {
	Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	GetBySlug(ctx context.Context, slug string) (*models.Organization, error)
	Update(ctx context.Context, req *UpdateOrganizationRequest) (*models.Organization, error)
	List(ctx context.Context, limit, offset int) ([]*models.Organization, error)
}

type organizationService struct {
	orgRepo  repositories.OrganizationRepository
	cacheSvc caching.CacheService
}

func NewOrganizationService(orgRepo repositories.OrganizationRepository, cacheSvc caching.CacheService) OrganizationService {
	return &organizationService{
		orgRepo:  orgRepo,
		cacheSvc: cacheSvc,
	}
}

func (s *organizationService) Create(ctx context.Context, req *CreateOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" {
		return nil, errors.New("organization name is required")
	}

	slug := req.Slug
	if slug == "" {
		slug = common.DeriveSlug(req.Name)
	}
	if slug == "" {
		return nil, errors.New("organization name does not derive a usable slug")
	}

	org := &models.Organization{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         slug,
		BusinessType: req.BusinessType,
		Status:       models.OrgStatusActive,
		Config:       req.Config,
	}

	// The unique constraint on slug is the only duplicate guard; a lost
	// race surfaces here as ErrDuplicateSlug.
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (s *organizationService) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationService) GetBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	cached, err := s.cacheSvc.GetOrganizationBySlug(ctx, slug)
	if err != nil {
		zap.L().Warn("organization cache read failed", zap.String("slug", slug), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	org, err := s.orgRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetOrganizationBySlug(ctx, org, orgCacheTTL); err != nil {
		zap.L().Warn("organization cache write failed", zap.String("slug", slug), zap.Error(err))
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, req *UpdateOrganizationRequest) (*models.Organization, error) {
	existing, err := s.orgRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	oldSlug := existing.Slug
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Slug != nil {
		existing.Slug = *req.Slug
	}
	if req.Config != nil {
		existing.Config = *req.Config
	}

	if err := s.orgRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	// Invalidate before returning so the very next read by slug
	// re-resolves the updated configuration.
	if err := s.cacheSvc.DeleteOrganizationBySlug(ctx, oldSlug, existing.Slug); err != nil {
		zap.L().Warn("organization cache invalidation failed",
			zap.String("slug", existing.Slug), zap.Error(err))
	}

	return existing, nil
}

func (s *organizationService) List(ctx context.Context, limit, offset int) ([]*models.Organization, error) {
	limit, offset = common.ValidatePaginationParams(limit, offset)
	return s.orgRepo.List(ctx, limit, offset)
}
