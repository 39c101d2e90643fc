package notification

import "context"

// Sink канал доставки уведомлений
type Sink interface {
	Send(ctx context.Context, event Event) error
	Name() string
}

// MetricsRecorder учет результатов доставки
type MetricsRecorder interface {
	RecordNotification(channel, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
