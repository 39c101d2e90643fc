package lookup_appointment

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/reference"
)

const (
	msgMissingParams = "email and bookingReference are required"
	msgNotFound      = "Appointment not found"
)

type Handler struct {
	service  AppointmentService
	location *time.Location
	logger   Logger
}

func NewHandler(service AppointmentService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/lookup
// Query params: email (required), bookingReference (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	email := strings.TrimSpace(query.Get("email"))
	ref := strings.ToUpper(strings.TrimSpace(query.Get("bookingReference")))

	if email == "" || ref == "" {
		h.logger.Warn("GET /appointments/lookup - Missing email or booking reference")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	// Номер неверного формата не может существовать
	if !reference.IsValid(ref) {
		h.logger.Warn("GET /appointments/lookup - Malformed booking reference: %q", ref)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	appt, err := h.service.Lookup(r.Context(), email, ref)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/lookup - Appointment not found: reference=%s", ref)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingParams)

		default:
			h.logger.Error("GET /appointments/lookup - Failed to look up appointment: reference=%s, error=%v", ref, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/lookup - Appointment found: id=%d, status=%s", appt.ID, appt.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(appt, h.location))
}

