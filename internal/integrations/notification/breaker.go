package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	breakerConsecutiveFailures = 5
	breakerOpenTimeout         = 30 * time.Second
)

// BreakerSink защищает удаленный канал circuit breaker'ом: после серии ошибок
// отправки отклоняются сразу, пока канал не восстановится
type BreakerSink struct {
	next Sink
	cb   *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerSink оборачивает канал
func NewBreakerSink(next Sink, logger Logger) *BreakerSink {
	settings := gobreaker.Settings{
		Name:        "notification-" + next.Name(),
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("BreakerSink: %s state %s -> %s", name, from, to)
		},
	}

	return &BreakerSink{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *BreakerSink) Name() string {
	return s.next.Name()
}

func (s *BreakerSink) Send(ctx context.Context, event Event) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.Send(ctx, event)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}
