package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus uint8

const (
	StatusPending AppointmentStatus = iota + 1
	StatusConfirmed
	StatusCancelled
	StatusCompleted
	StatusNoShow
)

var statusNames = map[AppointmentStatus]string{
	StatusPending:   "PENDING",
	StatusConfirmed: "CONFIRMED",
	StatusCancelled: "CANCELLED",
	StatusCompleted: "COMPLETED",
	StatusNoShow:    "NO_SHOW",
}

// ActiveStatuses are the statuses that occupy slot capacity.
var ActiveStatuses = []AppointmentStatus{StatusPending, StatusConfirmed}

// String returns the stable external name of the status.
func (s AppointmentStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AppointmentStatus(%d)", uint8(s))
}

// IsValid reports whether s is one of the known statuses.
func (s AppointmentStatus) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsActive reports whether an appointment in this status counts against capacity.
func (s AppointmentStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ParseAppointmentStatus converts an external name into a status.
func ParseAppointmentStatus(name string) (AppointmentStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	for status, n := range statusNames {
		if n == normalized {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Scan implements sql.Scanner.
func (s *AppointmentStatus) Scan(src interface{}) error {
	var name string
	switch v := src.(type) {
	case string:
		name = v
	case []byte:
		name = string(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrUnknownStatus, src)
	}

	parsed, err := ParseAppointmentStatus(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value implements driver.Valuer.
func (s AppointmentStatus) Value() (driver.Value, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStatus, uint8(s))
	}
	return s.String(), nil
}

// Appointment is a customer's booking at a branch.
type Appointment struct {
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
	Status              AppointmentStatus

	CreatedAt          time.Time
	UpdatedAt          time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}

// CustomerFullName joins first and last name.
func (a *Appointment) CustomerFullName() string {
	return strings.TrimSpace(a.CustomerFirstName + " " + a.CustomerLastName)
}

// EndTime returns the instant the appointment ends.
func (a *Appointment) EndTime() time.Time {
	return a.AppointmentDateTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive reports whether the appointment occupies slot capacity.
func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// Cancel moves the appointment to CANCELLED. Eligibility is checked by the caller.
func (a *Appointment) Cancel(reason string, at time.Time) {
	a.Status = StatusCancelled
	a.CancellationReason = &reason
	a.CancelledAt = &at
	a.UpdatedAt = at
}

// Clone returns a deep copy.
func (a *Appointment) Clone() *Appointment {
	c := *a
	if a.Purpose != nil {
		v := *a.Purpose
		c.Purpose = &v
	}
	if a.Notes != nil {
		v := *a.Notes
		c.Notes = &v
	}
	if a.CancelledAt != nil {
		v := *a.CancelledAt
		c.CancelledAt = &v
	}
	if a.CancellationReason != nil {
		v := *a.CancellationReason
		c.CancellationReason = &v
	}
	return &c
}
