package slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Oracle заполняет занятость слотов по активным записям
type Oracle struct {
	repo   AppointmentRepository
	logger Logger
}

// NewOracle создает новый экземпляр Oracle
func NewOracle(repo AppointmentRepository, logger Logger) *Oracle {
	return &Oracle{repo: repo, logger: logger}
}

// Annotate возвращает копию slots с заполненными CurrentBookings, MaxBookings и Available.
// Записи за весь интервал слотов читаются одним запросом, в слот попадают
// только записи, начинающиеся ровно в его начале.
func (o *Oracle) Annotate(ctx context.Context, branch *domain.Branch, slots []domain.TimeSlot) ([]domain.TimeSlot, error) {
	result := make([]domain.TimeSlot, len(slots))
	if len(slots) == 0 {
		return result, nil
	}

	from, to := slots[0].Start, slots[0].End
	for _, slot := range slots[1:] {
		if slot.Start.Before(from) {
			from = slot.Start
		}
		if slot.End.After(to) {
			to = slot.End
		}
	}

	active, err := o.repo.FindActiveByBranchAndTimeRange(ctx, branch.ID, from, to)
	if err != nil {
		o.logger.Error("AvailabilityOracle: load appointments failed for branch=%d in [%s, %s): %v",
			branch.ID, from.Format(domain.LocalDateTimeFormat), to.Format(domain.LocalDateTimeFormat), err)
		return nil, fmt.Errorf("%w: load active appointments: %v", ErrInternal, err)
	}

	counts := make(map[int64]int, len(active))
	for _, appt := range active {
		if appt.IsActive() {
			counts[appt.AppointmentDateTime.Unix()]++
		}
	}

	capacity := branch.MaxConcurrentAppointmentsPerSlot
	for i, slot := range slots {
		count := counts[slot.Start.Unix()]

		slot.CurrentBookings = count
		slot.MaxBookings = capacity
		slot.Available = count < capacity
		result[i] = slot
	}

	return result, nil
}
