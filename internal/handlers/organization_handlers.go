package handlers

import (
	"net/http"

	"bizforge/internal/common"
	"bizforge/internal/models"
	"bizforge/internal/services"

	"github.com/labstack/echo/v4"
)

// OrganizationHandlers handles organization-related HTTP requests
type OrganizationHandlers struct {
	orgSvc    services.OrganizationService
	exportSvc services.ExportService
}

// NewOrganizationHandlers creates a new organization handlers instance
func NewOrganizationHandlers(orgSvc services.OrganizationService, exportSvc services.ExportService) *OrganizationHandlers {
	return &OrganizationHandlers{
		orgSvc:    orgSvc,
		exportSvc: exportSvc,
	}
}

// ListOrganizationsRequest represents query parameters for listing organizations
type ListOrganizationsRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// ListOrganizations handles GET /organizations, newest first
func (h *OrganizationHandlers) ListOrganizations(c echo.Context) error {
	var req ListOrganizationsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "query", "Invalid query parameters")
	}

	orgs, err := h.orgSvc.List(c.Request().Context(), req.Limit, req.Offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, orgs)
}

// GetOrganization handles GET /organizations/:id
func (h *OrganizationHandlers) GetOrganization(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	org, err := h.orgSvc.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, org)
}

// UpdateOrganizationRequest represents the update request payload.
// Whichever fields are present replace the stored values wholesale.
// Config internals are not validated beyond being well-formed JSON; a
// configuration with duplicate resource keys is accepted as-is.
type UpdateOrganizationRequest struct {
	Name   *string              `json:"name"`
	Slug   *string              `json:"slug"`
	Config *models.TenantConfig `json:"config"`
}

// UpdateOrganization handles PUT /organizations/:id
func (h *OrganizationHandlers) UpdateOrganization(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req UpdateOrganizationRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "Invalid request format")
	}

	org, err := h.orgSvc.Update(c.Request().Context(), &services.UpdateOrganizationRequest{
		ID:     id,
		Name:   req.Name,
		Slug:   req.Slug,
		Config: req.Config,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, org)
}

// ExportOrganization handles POST /organizations/:id/export
func (h *OrganizationHandlers) ExportOrganization(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	url, err := h.exportSvc.ExportOrganization(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"url": url})
}
