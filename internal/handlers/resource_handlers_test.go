package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bizforge/internal/common"
	"bizforge/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockResourceService struct {
	mock.Mock
}

func (m *MockResourceService) Get(ctx context.Context, slug, resourceKey string) (*services.ResourceView, error) {
	args := m.Called(ctx, slug, resourceKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResourceView), args.Error(1)
}

func (m *MockResourceService) CreateRecord(ctx context.Context, slug, resourceKey string, data map[string]any) (map[string]any, error) {
	args := m.Called(ctx, slug, resourceKey, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockResourceService) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newDeleteContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/:slug/:resource")
	c.SetParamNames("slug", "resource")
	c.SetParamValues("joes-mechanics", "mechanics")
	return c, rec
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) common.ErrorResponse {
	t.Helper()
	var resp common.ErrorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestDeleteRecord_MissingIDNeverTouchesStorage(t *testing.T) {
	resourceSvc := &MockResourceService{}
	h := NewResourceHandlers(resourceSvc)

	c, rec := newDeleteContext("/v1/joes-mechanics/mechanics")

	assert.NoError(t, h.DeleteRecord(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, common.CodeMissingParameter, resp.Error.Code)

	resourceSvc.AssertNotCalled(t, "DeleteRecord", mock.Anything, mock.Anything)
}

func TestDeleteRecord_MalformedIDNeverTouchesStorage(t *testing.T) {
	resourceSvc := &MockResourceService{}
	h := NewResourceHandlers(resourceSvc)

	c, rec := newDeleteContext("/v1/joes-mechanics/mechanics?id=not-a-uuid")

	assert.NoError(t, h.DeleteRecord(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeErrorResponse(t, rec)
	assert.Equal(t, common.CodeValidationError, resp.Error.Code)

	resourceSvc.AssertNotCalled(t, "DeleteRecord", mock.Anything, mock.Anything)
}

func TestDeleteRecord_ValidID(t *testing.T) {
	resourceSvc := &MockResourceService{}
	h := NewResourceHandlers(resourceSvc)

	recordID := uuid.New()
	resourceSvc.On("DeleteRecord", mock.Anything, recordID).Return(nil)

	c, rec := newDeleteContext("/v1/joes-mechanics/mechanics?id=" + recordID.String())

	assert.NoError(t, h.DeleteRecord(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	resourceSvc.AssertExpectations(t)
}
