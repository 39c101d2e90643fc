package branch

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Repository источник филиалов, который кешируется
type Repository interface {
	FindByID(ctx context.Context, id int64) (*domain.Branch, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Branch, error)
	Count(ctx context.Context) (int64, error)
	Search(ctx context.Context, term string, limit, offset int) ([]*domain.Branch, error)
	CountSearch(ctx context.Context, term string) (int64, error)
}

// RedisClient подмножество *redis.Client, используемое кешем
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
