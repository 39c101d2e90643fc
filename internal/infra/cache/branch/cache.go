package branch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const keyPrefix = "branch:"

// Cache кеширует FindByID в Redis. Списки и поиск идут напрямую в источник.
// Ошибки Redis не ломают запрос: кеш пропускается с предупреждением в логе.
type Cache struct {
	next   Repository
	rdb    RedisClient
	ttl    time.Duration
	logger Logger
}

// NewCache создает кеширующий декоратор
func NewCache(next Repository, rdb RedisClient, ttl time.Duration, logger Logger) *Cache {
	return &Cache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// cachedBranch формат хранения филиала в Redis
type cachedBranch struct {
	ID                               int64     `json:"id"`
	Code                             string    `json:"code"`
	Name                             string    `json:"name"`
	Address                          string    `json:"address"`
	PhoneNumber                      string    `json:"phoneNumber"`
	Email                            string    `json:"email"`
	OpeningTime                      string    `json:"openingTime"`
	ClosingTime                      string    `json:"closingTime"`
	MaxConcurrentAppointmentsPerSlot int       `json:"maxConcurrentAppointmentsPerSlot"`
	IsActive                         bool      `json:"isActive"`
	CreatedAt                        time.Time `json:"createdAt"`
	UpdatedAt                        time.Time `json:"updatedAt"`
}

// FindByID читает филиал из кеша, при промахе берет из источника и кладет в кеш
func (c *Cache) FindByID(ctx context.Context, id int64) (*domain.Branch, error) {
	key := cacheKey(id)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		b, decodeErr := decode(raw)
		if decodeErr == nil {
			return b, nil
		}
		c.logger.Warn("BranchCache: corrupted entry key=%s: %v", key, decodeErr)
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("BranchCache: get key=%s failed: %v", key, err)
	}

	b, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	payload, err := encode(b)
	if err != nil {
		c.logger.Warn("BranchCache: encode branch id=%d failed: %v", id, err)
		return b, nil
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("BranchCache: set key=%s failed: %v", key, err)
	}

	return b, nil
}

func (c *Cache) List(ctx context.Context, limit, offset int) ([]*domain.Branch, error) {
	return c.next.List(ctx, limit, offset)
}

func (c *Cache) Count(ctx context.Context) (int64, error) {
	return c.next.Count(ctx)
}

func (c *Cache) Search(ctx context.Context, term string, limit, offset int) ([]*domain.Branch, error) {
	return c.next.Search(ctx, term, limit, offset)
}

func (c *Cache) CountSearch(ctx context.Context, term string) (int64, error) {
	return c.next.CountSearch(ctx, term)
}

func cacheKey(id int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, id)
}

func encode(b *domain.Branch) ([]byte, error) {
	return json.Marshal(cachedBranch{
		ID:                               b.ID,
		Code:                             b.Code,
		Name:                             b.Name,
		Address:                          b.Address,
		PhoneNumber:                      b.PhoneNumber,
		Email:                            b.Email,
		OpeningTime:                      b.OpeningTime.String(),
		ClosingTime:                      b.ClosingTime.String(),
		MaxConcurrentAppointmentsPerSlot: b.MaxConcurrentAppointmentsPerSlot,
		IsActive:                         b.IsActive,
		CreatedAt:                        b.CreatedAt,
		UpdatedAt:                        b.UpdatedAt,
	})
}

func decode(raw []byte) (*domain.Branch, error) {
	var cb cachedBranch
	if err := json.Unmarshal(raw, &cb); err != nil {
		return nil, err
	}

	opening, err := types.NewTimeStringFromString(cb.OpeningTime)
	if err != nil {
		return nil, err
	}
	closing, err := types.NewTimeStringFromString(cb.ClosingTime)
	if err != nil {
		return nil, err
	}

	return &domain.Branch{
		ID:                               cb.ID,
		Code:                             cb.Code,
		Name:                             cb.Name,
		Address:                          cb.Address,
		PhoneNumber:                      cb.PhoneNumber,
		Email:                            cb.Email,
		OpeningTime:                      opening,
		ClosingTime:                      closing,
		MaxConcurrentAppointmentsPerSlot: cb.MaxConcurrentAppointmentsPerSlot,
		IsActive:                         cb.IsActive,
		CreatedAt:                        cb.CreatedAt,
		UpdatedAt:                        cb.UpdatedAt,
	}, nil
}
