package cancel_appointment

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/reference"
	cancelAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/cancel_appointment"
)

const (
	msgMissingParams    = "email and bookingReference are required"
	msgInvalidReference = "Invalid booking reference format"
)

type Handler struct {
	useCase  CancelAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CancelAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/appointments/cancel
// Query params: email (required), bookingReference (required), reason (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := strings.TrimSpace(query.Get("email"))
	ref := strings.ToUpper(strings.TrimSpace(query.Get("bookingReference")))

	if email == "" || ref == "" {
		h.logger.Warn("PUT /appointments/cancel - Missing email or booking reference")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	if !reference.IsValid(ref) {
		h.logger.Warn("PUT /appointments/cancel - Invalid booking reference: %q", ref)
		handlers.RespondBadRequest(w, msgInvalidReference)
		return
	}

	req := &cancelAppointment.Request{
		Email:            email,
		BookingReference: ref,
	}
	if reason := query.Get("reason"); reason != "" {
		req.Reason = &reason
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PUT /appointments/cancel - Appointment not found: reference=%s", ref)
			handlers.RespondNotFound(w, domain.MessageOf(err))

		case domain.KindOf(err) == domain.KindBadRequest:
			h.logger.Warn("PUT /appointments/cancel - Rejected: reference=%s, reason=%s", ref, domain.MessageOf(err))
			handlers.RespondBadRequest(w, domain.MessageOf(err))

		default:
			h.logger.Error("PUT /appointments/cancel - Failed to cancel appointment: reference=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /appointments/cancel - Appointment cancelled: id=%d, reference=%s",
		result.Appointment.ID, result.Appointment.BookingReference)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainAppointment(result.Appointment, h.location))
}
