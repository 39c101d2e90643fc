package validation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BranchRepository получение филиала
type BranchRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// AppointmentRepository подсчет активных записей на момент времени
type AppointmentRepository interface {
	CountActiveAtExactTime(ctx context.Context, branchID int64, at time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
