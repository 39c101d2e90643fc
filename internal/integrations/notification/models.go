package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Event уведомление о событии жизненного цикла записи
type Event struct {
	ID         string           `json:"eventId"`
	Type       string           `json:"eventType"`
	OccurredAt time.Time        `json:"occurredAt"`
	Payload    AppointmentEvent `json:"appointment"`
}

// AppointmentEvent данные записи в уведомлении
type AppointmentEvent struct {
	BookingReference    string     `json:"bookingReference"`
	BranchID            int64      `json:"branchId"`
	CustomerName        string     `json:"customerName"`
	CustomerEmail       string     `json:"customerEmail"`
	CustomerPhone       string     `json:"customerPhone"`
	AppointmentDateTime time.Time  `json:"appointmentDateTime"`
	EndDateTime         time.Time  `json:"endDateTime"`
	DurationMinutes     int        `json:"durationMinutes"`
	Status              string     `json:"status"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CancellationReason  *string    `json:"cancellationReason,omitempty"`
}

// NewEvent строит событие по записи
func NewEvent(eventType string, appt *domain.Appointment, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: at,
		Payload: AppointmentEvent{
			BookingReference:    appt.BookingReference,
			BranchID:            appt.BranchID,
			CustomerName:        appt.CustomerFullName(),
			CustomerEmail:       appt.CustomerEmail,
			CustomerPhone:       appt.CustomerPhone,
			AppointmentDateTime: appt.AppointmentDateTime,
			EndDateTime:         appt.EndTime(),
			DurationMinutes:     appt.DurationMinutes,
			Status:              appt.Status.String(),
			CancelledAt:         appt.CancelledAt,
			CancellationReason:  appt.CancellationReason,
		},
	}
}
