package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentResponse запись на прием для внешних слоев
type AppointmentResponse struct {
	ID                  int64
	BookingReference    string
	BranchID            int64
	CustomerFirstName   string
	CustomerLastName    string
	CustomerEmail       string
	CustomerPhone       string
	AppointmentDateTime time.Time
	DurationMinutes     int
	Purpose             *string
	Notes               *string
	Status              string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CancelledAt         *time.Time
	CancellationReason  *string
}

// FromDomainAppointment конвертирует доменную модель
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  a.ID,
		BookingReference:    a.BookingReference,
		BranchID:            a.BranchID,
		CustomerFirstName:   a.CustomerFirstName,
		CustomerLastName:    a.CustomerLastName,
		CustomerEmail:       a.CustomerEmail,
		CustomerPhone:       a.CustomerPhone,
		AppointmentDateTime: a.AppointmentDateTime,
		DurationMinutes:     a.DurationMinutes,
		Purpose:             a.Purpose,
		Notes:               a.Notes,
		Status:              a.Status.String(),
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
		CancelledAt:         a.CancelledAt,
		CancellationReason:  a.CancellationReason,
	}
}
