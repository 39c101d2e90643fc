package reference

import "context"

// AppointmentRepository проверка занятости номера бронирования
type AppointmentRepository interface {
	ExistsByReference(ctx context.Context, reference string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
