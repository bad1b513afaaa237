package handlers

import (
	"errors"
	"net/http"

	"bizforge/internal/common"
	"bizforge/internal/models"

	"github.com/labstack/echo/v4"
)

// respondError maps the stable failure kinds onto HTTP responses. Nothing
// is retried here; transient storage failures surface as 503 and the
// caller decides whether to retry.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrOrgNotFound):
		return common.SendNotFoundError(c, common.CodeOrgNotFound, "Organization")
	case errors.Is(err, models.ErrResourceNotFound):
		return common.SendNotFoundError(c, common.CodeResourceNotFound, "Resource")
	case errors.Is(err, models.ErrRecordNotFound):
		return common.SendNotFoundError(c, common.CodeRecordNotFound, "Record")
	case errors.Is(err, models.ErrDuplicateSlug):
		return common.SendError(c, http.StatusConflict, common.CodeDuplicateSlug, "An organization with this slug already exists")
	case errors.Is(err, models.ErrMalformedConfig):
		return common.SendError(c, http.StatusBadGateway, common.CodeMalformedConfig, err.Error())
	case errors.Is(err, models.ErrStorageUnavailable):
		return common.SendError(c, http.StatusServiceUnavailable, common.CodeStorageUnavailable, "Backing store unreachable")
	default:
		return common.SendServerError(c, "Operation could not be completed")
	}
}
