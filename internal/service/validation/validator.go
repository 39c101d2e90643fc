package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
)

// Validator проверки допуска записи и возможности отмены
type Validator struct {
	branchRepo      BranchRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewValidator создает новый экземпляр Validator
func NewValidator(branchRepo BranchRepository, appointmentRepo AppointmentRepository, logger Logger) *Validator {
	return &Validator{
		branchRepo:      branchRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// ValidateSlotAvailable проверяет, что в слоте, начинающемся в dateTime, есть место.
// Филиал и занятость читаются заново, результат актуален только внутри той же транзакции.
func (v *Validator) ValidateSlotAvailable(ctx context.Context, branchID int64, dateTime time.Time) error {
	branch, err := v.branchRepo.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			v.logger.Warn("ValidateSlotAvailable: branch id=%d not found", branchID)
			return ErrBranchUnknown
		}
		v.logger.Error("ValidateSlotAvailable: failed to get branch id=%d: %v", branchID, err)
		return fmt.Errorf("%w: ValidateSlotAvailable - get branch: %w", ErrInternal, err)
	}

	count, err := v.appointmentRepo.CountActiveAtExactTime(ctx, branchID, dateTime)
	if err != nil {
		v.logger.Error("ValidateSlotAvailable: failed to count appointments for branch id=%d: %v", branchID, err)
		return fmt.Errorf("%w: ValidateSlotAvailable - count: %w", ErrInternal, err)
	}

	if count >= branch.MaxConcurrentAppointmentsPerSlot {
		v.logger.Warn("ValidateSlotAvailable: branch id=%d at %s is full, %d/%d",
			branchID, dateTime.Format(domain.LocalDateTimeFormat), count, branch.MaxConcurrentAppointmentsPerSlot)
		return ErrCapacityExceeded
	}

	return nil
}

// ValidateWithinOperatingHours проверяет, что [dateTime, dateTime+duration) лежит
// внутри рабочего окна филиала по настенным часам dateTime.
// Запись, заканчивающаяся после полуночи, всегда вне окна.
func (v *Validator) ValidateWithinOperatingHours(branch *domain.Branch, dateTime time.Time, durationMinutes int) error {
	start := dateTime.Hour()*3600 + dateTime.Minute()*60 + dateTime.Second()
	end := start + durationMinutes*60

	opening := branch.OpeningTime.Minutes() * 60
	closing := branch.ClosingTime.Minutes() * 60

	if opening < 0 || closing < 0 || start < opening || end > closing {
		return ErrOutsideOperatingHours
	}

	return nil
}

// ValidateCancellable проверяет, что запись можно отменить в момент now
func (v *Validator) ValidateCancellable(appt *domain.Appointment, now time.Time) error {
	switch appt.Status {
	case domain.StatusCancelled:
		return ErrAlreadyCancelled
	case domain.StatusCompleted:
		return ErrCannotCancelCompleted
	case domain.StatusNoShow:
		return ErrCannotCancelNoShow
	case domain.StatusPending, domain.StatusConfirmed:
		if appt.AppointmentDateTime.Before(now) {
			return ErrPastAppointment
		}
		return nil
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnknownStatus, appt.Status)
	}
}
