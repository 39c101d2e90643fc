package search_branches

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

// Handle GET /api/v1/branches/search
// Query params: query (optional, пустой дает пустую страницу), page, size
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, size, err := handlers.ParsePage(q)
	if err != nil {
		h.logger.Warn("GET /branches/search - %v", err)
		handlers.RespondBadRequest(w, msgInvalidPage)
		return
	}

	result, err := h.service.Search(r.Context(), q.Get("query"), page, size)
	if err != nil {
		h.logger.Error("GET /branches/search - Failed to search branches: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches/search - Search done: page=%d, found=%d", result.Page, result.Total)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromBranchPage(result))
}
