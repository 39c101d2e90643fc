package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

const (
	msgMissingBranchID = "branchId is required"
	msgInvalidBranchID = "Invalid branchId"
	msgMissingDate     = "date is required"
	msgInvalidDate     = "Invalid date, expected YYYY-MM-DD"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/slots
// Query params: branchId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем branchId из query параметров
	branchIDStr := query.Get("branchId")
	if branchIDStr == "" {
		h.logger.Warn("GET /appointments/slots - Missing branch ID")
		handlers.RespondBadRequest(w, msgMissingBranchID)
		return
	}

	branchID, err := strconv.ParseInt(branchIDStr, 10, 64)
	if err != nil || branchID <= 0 {
		h.logger.Warn("GET /appointments/slots - Invalid branch ID: %q", branchIDStr)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /appointments/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(branchID, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /appointments/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBranchNotFound):
			h.logger.Warn("GET /appointments/slots - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, domain.MessageOf(err))

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, domain.MessageOf(err))

		default:
			h.logger.Error("GET /appointments/slots - Failed to get slots: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/slots - Slots retrieved: branch_id=%d, date=%s, slots_count=%d",
		branchID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
