package create_appointment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validation"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidDateTime    = "Invalid appointmentDateTime, expected YYYY-MM-DDTHH:MM:SS"

	retryAfterSeconds = 1
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid date-time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, validation.ErrCapacityExceeded):
			h.logger.Warn("POST /appointments - Slot not available: branch_id=%d, date_time=%s, retryable=%t",
				req.BranchID, req.AppointmentDateTime, domain.IsRetryable(err))
			if domain.IsRetryable(err) {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
			}
			handlers.RespondConflict(w, domain.MessageOf(err))

		case errors.Is(err, createAppointment.ErrBranchNotFound):
			h.logger.Warn("POST /appointments - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, domain.MessageOf(err))

		case domain.KindOf(err) == domain.KindBadRequest:
			h.logger.Warn("POST /appointments - Rejected: branch_id=%d, reason=%s", req.BranchID, domain.MessageOf(err))
			handlers.RespondBadRequest(w, domain.MessageOf(err))

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: branch_id=%d, error=%v", req.BranchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%d, reference=%s, branch_id=%d",
		result.Appointment.ID, result.Appointment.BookingReference, result.Appointment.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainAppointment(result.Appointment, h.location))
}
