package domain

// Booking rules
const (
	DefaultSlotDurationMinutes = 30
	MinDurationMinutes         = 15
	DefaultReferenceAttempts   = 5
	DefaultCancellationReason  = "Customer requested cancellation"
)

// Booking reference format: prefix followed by uppercase alphanumerics.
const (
	ReferencePrefix       = "BK"
	ReferenceRandomLength = 8
	ReferencePattern      = `^BK[A-Z0-9]{8}$`
)

// Customer field limits
const (
	MaxNameLength               = 100
	MaxEmailLength              = 255
	MaxPhoneLength              = 20
	MaxPurposeLength            = 500
	MaxNotesLength              = 1000
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat          = "15:04"               // HH:MM
	DateFormat          = "2006-01-02"          // YYYY-MM-DD
	LocalDateTimeFormat = "2006-01-02T15:04:05" // branch-local date-time without zone
)

// Lifecycle event names used in metrics and notifications.
const (
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentCancelled = "appointment.cancelled"
)
