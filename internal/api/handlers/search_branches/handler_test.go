package search_branches

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	query      string
	page, size int
	err        error
}

func (f *fakeService) Search(_ context.Context, query string, page, size int) (*models.BranchListResponse, error) {
	f.query, f.page, f.size = query, page, size
	if f.err != nil {
		return nil, f.err
	}
	return &models.BranchListResponse{
		Items:      []*models.BranchResponse{{ID: 2, Name: "Johannesburg Sandton"}},
		Page:       page,
		Size:       size,
		Total:      1,
		TotalPages: 1,
	}, nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches/search?query=sandton&page=1&size=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sandton", svc.query)
	assert.Equal(t, 1, svc.page)
	assert.Equal(t, 10, svc.size)

	var resp handlers.BranchPageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "Johannesburg Sandton", resp.Content[0].Name)
}

func TestHandle_InvalidSize(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches/search?query=a&size=abc", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.query)
}

func TestHandle_ServiceError(t *testing.T) {
	h := NewHandler(&fakeService{err: errors.New("boom")}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/branches/search?query=a", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
