package handlers

import (
	"net/http"

	"bizforge/internal/common"
	"bizforge/internal/services"

	"github.com/labstack/echo/v4"
)

// ResourceHandlers exposes the generic data plane: one handler set serves
// every resource of every tenant, driven entirely by configuration.
type ResourceHandlers struct {
	resourceSvc services.ResourceService
}

// NewResourceHandlers creates a new resource handlers instance
func NewResourceHandlers(resourceSvc services.ResourceService) *ResourceHandlers {
	return &ResourceHandlers{resourceSvc: resourceSvc}
}

// GetResource handles GET /:slug/:resource
func (h *ResourceHandlers) GetResource(c echo.Context) error {
	slug := c.Param("slug")
	resource := c.Param("resource")

	view, err := h.resourceSvc.Get(c.Request().Context(), slug, resource)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, view)
}

// CreateRecord handles POST /:slug/:resource. The JSON body is the field
// map; it is persisted without being checked against the descriptor.
func (h *ResourceHandlers) CreateRecord(c echo.Context) error {
	slug := c.Param("slug")
	resource := c.Param("resource")

	var payload map[string]any
	if err := c.Bind(&payload); err != nil {
		return common.SendValidationError(c, "body", "Request body must be a JSON object")
	}

	shaped, err := h.resourceSvc.CreateRecord(c.Request().Context(), slug, resource, payload)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, shaped)
}

// DeleteRecord handles DELETE /:slug/:resource?id=<uuid>. The id is
// required; the guard fires before any storage call.
func (h *ResourceHandlers) DeleteRecord(c echo.Context) error {
	idStr := c.QueryParam("id")
	if idStr == "" {
		return common.SendMissingParameter(c, "id")
	}

	id, err := common.ValidateUUID(idStr, "id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.resourceSvc.DeleteRecord(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
