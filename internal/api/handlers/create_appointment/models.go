package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	BranchID            int64   `json:"branchId"`
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	PhoneNumber         string  `json:"phoneNumber"`
	AppointmentDateTime string  `json:"appointmentDateTime"` // "2026-03-11T09:00:00"
	DurationMinutes     *int    `json:"durationMinutes"`
	Purpose             *string `json:"purpose,omitempty"`
	Notes               *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(loc *time.Location) (*createAppointment.Request, error) {
	var dateTime time.Time
	if r.AppointmentDateTime != "" {
		parsed, err := handlers.ParseLocalDateTime(r.AppointmentDateTime, loc)
		if err != nil {
			return nil, err
		}
		dateTime = parsed
	}

	// Длительность обязательна, отсутствие передаем как 0 и отсекаем валидацией
	duration := 0
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}

	return &createAppointment.Request{
		BranchID:            r.BranchID,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Email:               r.Email,
		PhoneNumber:         r.PhoneNumber,
		AppointmentDateTime: dateTime,
		DurationMinutes:     duration,
		Purpose:             r.Purpose,
		Notes:               r.Notes,
	}, nil
}
