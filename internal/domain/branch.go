package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Branch is a physical location customers book appointments at.
type Branch struct {
	ID                               int64
	Code                             string
	Name                             string
	Address                          string
	PhoneNumber                      string
	Email                            string
	OpeningTime                      types.TimeString
	ClosingTime                      types.TimeString
	MaxConcurrentAppointmentsPerSlot int
	IsActive                         bool
	CreatedAt                        time.Time
	UpdatedAt                        time.Time
}

// HasOperatingWindow reports whether the branch opens before it closes.
// A branch without a window yields no slots.
func (b *Branch) HasOperatingWindow() bool {
	if b.OpeningTime.Validate() != nil || b.ClosingTime.Validate() != nil {
		return false
	}
	return b.OpeningTime.IsBefore(b.ClosingTime)
}
