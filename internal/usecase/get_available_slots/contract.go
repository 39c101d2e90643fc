package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// SlotCalculator нарезка рабочего окна на слоты
type SlotCalculator interface {
	ComputeSlots(branch *domain.Branch, date time.Time, now time.Time) []domain.TimeSlot
	DurationMinutes() int
}

// AvailabilityOracle заполнение занятости слотов
type AvailabilityOracle interface {
	Annotate(ctx context.Context, branch *domain.Branch, slots []domain.TimeSlot) ([]domain.TimeSlot, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
