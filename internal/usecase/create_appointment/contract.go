package create_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	LockSlot(ctx context.Context, branchID int64, at time.Time) error
	Save(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// Validator проверки допуска записи
type Validator interface {
	ValidateSlotAvailable(ctx context.Context, branchID int64, dateTime time.Time) error
	ValidateWithinOperatingHours(branch *domain.Branch, dateTime time.Time, durationMinutes int) error
}

// ReferenceGenerator генератор номеров бронирования
type ReferenceGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// Notifier асинхронная отправка уведомлений, не блокирует вызывающего
type Notifier interface {
	OnConfirmed(appt *domain.Appointment)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder учет событий и отказов
type MetricsRecorder interface {
	RecordAppointmentEvent(event string)
	RecordRejection(reason string)
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
