package common

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Stable error codes exposed in the response envelope. Clients branch on
// the code, the message is for humans.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeMissingParameter   = "MISSING_PARAMETER"
	CodeOrgNotFound        = "ORG_NOT_FOUND"
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeRecordNotFound     = "RECORD_NOT_FOUND"
	CodeDuplicateSlug      = "DUPLICATE_SLUG"
	CodeMalformedConfig    = "MALFORMED_CONFIG"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeServerError        = "SERVER_ERROR"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendError sends an error response with the given HTTP status and code
func SendError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, CreateErrorResponse(code, message, nil))
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse(CodeValidationError, "Validation failed", details))
}

// SendMissingParameter sends a missing-parameter error response
func SendMissingParameter(c echo.Context, param string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse(CodeMissingParameter, fmt.Sprintf("%s is required", param), nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, code, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse(code, fmt.Sprintf("%s not found", resource), nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse(CodeServerError, message, nil))
}

// ValidateUUID validates UUID format
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid UUID: %v", fieldName, err)
	}

	return id, nil
}

// ValidatePaginationParams validates pagination parameters
func ValidatePaginationParams(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 50 // Default
	}
	if limit > 1000 {
		limit = 1000 // Maximum
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
