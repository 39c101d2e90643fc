package list_branches

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgInvalidPage = "Invalid page or size"

type Handler struct {
	service BranchService
	logger  Logger
}

func NewHandler(service BranchService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches
// Query params: page (optional, from 0), size (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	page, size, err := handlers.ParsePage(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /branches - %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	result, err := h.service.List(r.Context(), page, size)
	if err != nil {
		h.logger.Error("GET /branches - Failed to list branches: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches - Branches listed: page=%d, size=%d, total=%d", result.Page, result.Size, result.Total)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBranchPage(result))
}
