package branches

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Branch, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*domain.Branch, error)
	CountSearch(ctx context.Context, term string) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
