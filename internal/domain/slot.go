package domain

import "time"

// TimeSlot is a bookable interval [Start, End) at a branch.
type TimeSlot struct {
	Start           time.Time
	End             time.Time
	Available       bool
	CurrentBookings int
	MaxBookings     int
}
