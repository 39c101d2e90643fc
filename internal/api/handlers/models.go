package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// AppointmentResponse HTTP модель записи.
// appointmentDateTime отдается по часам филиала без зоны, служебные отметки - в RFC3339.
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	BookingReference    string  `json:"bookingReference"`
	BranchID            int64   `json:"branchId"`
	CustomerFirstName   string  `json:"customerFirstName"`
	CustomerLastName    string  `json:"customerLastName"`
	CustomerEmail       string  `json:"customerEmail"`
	CustomerPhone       string  `json:"customerPhone"`
	AppointmentDateTime string  `json:"appointmentDateTime"`
	DurationMinutes     int     `json:"durationMinutes"`
	Purpose             *string `json:"purpose,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	Status              string  `json:"status"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
	CancelledAt         *string `json:"cancelledAt,omitempty"`
	CancellationReason  *string `json:"cancellationReason,omitempty"`
}

// FromAppointment конвертирует запись в HTTP модель, loc - часовой пояс филиалов
func FromAppointment(a *models.AppointmentResponse, loc *time.Location) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                  a.ID,
		BookingReference:    a.BookingReference,
		BranchID:            a.BranchID,
		CustomerFirstName:   a.CustomerFirstName,
		CustomerLastName:    a.CustomerLastName,
		CustomerEmail:       a.CustomerEmail,
		CustomerPhone:       a.CustomerPhone,
		AppointmentDateTime: a.AppointmentDateTime.In(loc).Format(domain.LocalDateTimeFormat),
		DurationMinutes:     a.DurationMinutes,
		Purpose:             a.Purpose,
		Notes:               a.Notes,
		Status:              a.Status,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
		CancellationReason:  a.CancellationReason,
	}
	if a.CancelledAt != nil {
		s := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	return resp
}

// FromDomainAppointment конвертирует доменную запись в HTTP модель
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	return FromAppointment(models.FromDomainAppointment(a), loc)
}

// ParseLocalDateTime разбирает время записи: RFC3339 приводится к loc,
// время без зоны считается временем филиала
func ParseLocalDateTime(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range []string{domain.LocalDateTimeFormat, "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date-time %q, expected %s", value, domain.LocalDateTimeFormat)
}
