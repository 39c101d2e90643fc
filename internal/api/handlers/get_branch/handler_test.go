package get_branch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct{}

func (fakeService) GetByID(_ context.Context, id int64) (*models.BranchResponse, error) {
	if id != 1 {
		return nil, branches.ErrBranchNotFound
	}
	return &models.BranchResponse{ID: 1, Name: "Cape Town Central", OpeningTime: "08:00", ClosingTime: "17:00"}, nil
}

func serve(target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/branches/{branchId}", NewHandler(fakeService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := serve("/api/v1/branches/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.BranchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Cape Town Central", resp.Name)
	assert.Equal(t, "08:00", resp.OpeningTime)

	assert.Equal(t, http.StatusNotFound, serve("/api/v1/branches/2").Code)
	assert.Equal(t, http.StatusBadRequest, serve("/api/v1/branches/abc").Code)
}
