package handlers

import (
	"net/http"

	"bizforge/internal/common"
	"bizforge/internal/services"

	"github.com/labstack/echo/v4"
)

// ProvisionHandlers handles tenant provisioning requests
type ProvisionHandlers struct {
	provisionSvc services.ProvisionService
}

// NewProvisionHandlers creates a new provision handlers instance
func NewProvisionHandlers(provisionSvc services.ProvisionService) *ProvisionHandlers {
	return &ProvisionHandlers{provisionSvc: provisionSvc}
}

// CreateTenantRequest represents the tenant provisioning payload
type CreateTenantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTenant handles POST /tenants: the description goes to the
// configuration producer, the validated output becomes an Organization
// with optional seed records.
func (h *ProvisionHandlers) CreateTenant(c echo.Context) error {
	var req CreateTenantRequest
	if err := c.Bind(&req); err != nil {
		return common.SendValidationError(c, "body", "Invalid request format")
	}
	if req.Name == "" {
		return common.SendMissingParameter(c, "name")
	}
	if req.Description == "" {
		return common.SendMissingParameter(c, "description")
	}

	org, err := h.provisionSvc.Provision(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, org)
}
