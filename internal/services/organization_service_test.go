package services

import (
	"context"
	"testing"

	"bizforge/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockOrganizationRepository
	mockCache *MockCacheService
	service   OrganizationService
}

func (suite *OrganizationServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockOrganizationRepository{}
	suite.mockCache = &MockCacheService{}
	suite.service = NewOrganizationService(suite.mockRepo, suite.mockCache)

	suite.mockRepo.Test(suite.T())
	suite.mockCache.Test(suite.T())
}

func (suite *OrganizationServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}

func sampleConfig() models.TenantConfig {
	return models.TenantConfig{
		ThemeColor: "slate",
		Resources: []models.ResourceDescriptor{
			{
				Key:   "mechanics",
				Label: "Mechanics",
				Icon:  "wrench",
				Fields: []models.FieldDescriptor{
					{Name: "name", Label: "Name", Type: models.FieldTypeText},
					{Name: "specialty", Label: "Specialty", Type: models.FieldTypeText},
				},
			},
		},
	}
}

func (suite *OrganizationServiceTestSuite) TestCreate_DerivesSlug() {
	ctx := context.Background()
	req := &CreateOrganizationRequest{
		Name:   "Joe's Mechanics!!",
		Config: sampleConfig(),
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Organization")).Return(nil).Run(func(args mock.Arguments) {
		org := args.Get(1).(*models.Organization)
		assert.Equal(suite.T(), "Joe's Mechanics!!", org.Name)
		assert.Equal(suite.T(), "joes-mechanics", org.Slug)
		assert.Equal(suite.T(), models.OrgStatusActive, org.Status)
		assert.NotEqual(suite.T(), uuid.Nil, org.ID)
	})

	org, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "joes-mechanics", org.Slug)
}

func (suite *OrganizationServiceTestSuite) TestCreate_ExplicitSlugWins() {
	ctx := context.Background()
	req := &CreateOrganizationRequest{
		Name:   "Joe's Mechanics",
		Slug:   "joes-garage",
		Config: sampleConfig(),
	}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Organization")).Return(nil).Run(func(args mock.Arguments) {
		assert.Equal(suite.T(), "joes-garage", args.Get(1).(*models.Organization).Slug)
	})

	_, err := suite.service.Create(ctx, req)
	assert.NoError(suite.T(), err)
}

func (suite *OrganizationServiceTestSuite) TestCreate_DuplicateSlugSurfaces() {
	ctx := context.Background()
	req := &CreateOrganizationRequest{Name: "Joes Mechanics", Config: sampleConfig()}

	suite.mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Organization")).Return(models.ErrDuplicateSlug)

	org, err := suite.service.Create(ctx, req)
	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, models.ErrDuplicateSlug)
}

func (suite *OrganizationServiceTestSuite) TestCreate_EmptyName() {
	org, err := suite.service.Create(context.Background(), &CreateOrganizationRequest{Name: ""})
	assert.Nil(suite.T(), org)
	assert.Error(suite.T(), err)
}

func (suite *OrganizationServiceTestSuite) TestGetBySlug_CacheHit() {
	ctx := context.Background()
	cached := &models.Organization{ID: uuid.New(), Name: "Cached", Slug: "cached", Config: sampleConfig()}

	suite.mockCache.On("GetOrganizationBySlug", ctx, "cached").Return(cached, nil)

	org, err := suite.service.GetBySlug(ctx, "cached")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached.ID, org.ID)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetBySlug", ctx, "cached")
}

func (suite *OrganizationServiceTestSuite) TestGetBySlug_CacheMissPopulates() {
	ctx := context.Background()
	stored := &models.Organization{ID: uuid.New(), Name: "Stored", Slug: "stored", Config: sampleConfig()}

	suite.mockCache.On("GetOrganizationBySlug", ctx, "stored").Return(nil, nil)
	suite.mockRepo.On("GetBySlug", ctx, "stored").Return(stored, nil)
	suite.mockCache.On("SetOrganizationBySlug", ctx, stored, orgCacheTTL).Return(nil)

	org, err := suite.service.GetBySlug(ctx, "stored")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored.ID, org.ID)
}

func (suite *OrganizationServiceTestSuite) TestGetBySlug_NotFound() {
	ctx := context.Background()

	suite.mockCache.On("GetOrganizationBySlug", ctx, "ghost").Return(nil, nil)
	suite.mockRepo.On("GetBySlug", ctx, "ghost").Return(nil, models.ErrOrgNotFound)

	org, err := suite.service.GetBySlug(ctx, "ghost")
	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, models.ErrOrgNotFound)
}

func (suite *OrganizationServiceTestSuite) TestUpdate_InvalidatesCacheBeforeReturn() {
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Organization{ID: id, Name: "Old Name", Slug: "old-slug", Status: models.OrgStatusActive, Config: sampleConfig()}

	newName := "New Name"
	newSlug := "new-slug"
	newConfig := sampleConfig()
	newConfig.Resources[0].Label = "Wrench Crew"

	suite.mockRepo.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Organization")).Return(nil).Run(func(args mock.Arguments) {
		org := args.Get(1).(*models.Organization)
		assert.Equal(suite.T(), newName, org.Name)
		assert.Equal(suite.T(), newSlug, org.Slug)
		assert.Equal(suite.T(), "Wrench Crew", org.Config.Resources[0].Label)
	})
	suite.mockCache.On("DeleteOrganizationBySlug", ctx, "old-slug", "new-slug").Return(nil)

	org, err := suite.service.Update(ctx, &UpdateOrganizationRequest{
		ID:     id,
		Name:   &newName,
		Slug:   &newSlug,
		Config: &newConfig,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Wrench Crew", org.Config.Resources[0].Label)
}

func (suite *OrganizationServiceTestSuite) TestUpdate_PartialKeepsExistingFields() {
	ctx := context.Background()
	id := uuid.New()
	existing := &models.Organization{ID: id, Name: "Keep Me", Slug: "keep-me", Status: models.OrgStatusActive, Config: sampleConfig()}

	newConfig := sampleConfig()
	newConfig.ThemeColor = "indigo"

	suite.mockRepo.On("GetByID", ctx, id).Return(existing, nil)
	suite.mockRepo.On("Update", ctx, mock.AnythingOfType("*models.Organization")).Return(nil).Run(func(args mock.Arguments) {
		org := args.Get(1).(*models.Organization)
		assert.Equal(suite.T(), "Keep Me", org.Name)
		assert.Equal(suite.T(), "keep-me", org.Slug)
		assert.Equal(suite.T(), "indigo", org.Config.ThemeColor)
	})
	suite.mockCache.On("DeleteOrganizationBySlug", ctx, "keep-me", "keep-me").Return(nil)

	_, err := suite.service.Update(ctx, &UpdateOrganizationRequest{ID: id, Config: &newConfig})
	assert.NoError(suite.T(), err)
}

func (suite *OrganizationServiceTestSuite) TestUpdate_NotFound() {
	ctx := context.Background()
	id := uuid.New()

	suite.mockRepo.On("GetByID", ctx, id).Return(nil, models.ErrOrgNotFound)

	org, err := suite.service.Update(ctx, &UpdateOrganizationRequest{ID: id})
	assert.Nil(suite.T(), org)
	assert.ErrorIs(suite.T(), err, models.ErrOrgNotFound)
}

func (suite *OrganizationServiceTestSuite) TestList_ClampsPagination() {
	ctx := context.Background()

	suite.mockRepo.On("List", ctx, 50, 0).Return([]*models.Organization{}, nil)

	_, err := suite.service.List(ctx, -5, -1)
	assert.NoError(suite.T(), err)
}
