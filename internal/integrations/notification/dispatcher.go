package notification

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	defaultWorkers    = 1
	defaultBufferSize = 1000
	sendTimeout       = 5 * time.Second
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

// Dispatcher асинхронно доставляет уведомления через Sink.
// Постановка в очередь никогда не блокирует вызывающего: при заполненном буфере событие отбрасывается.
type Dispatcher struct {
	sink    Sink
	logger  Logger
	metrics MetricsRecorder
	now     func() time.Time

	events chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewDispatcher создает диспетчер и запускает workers обработчиков
func NewDispatcher(sink Sink, workers, bufferSize int, logger Logger, metrics MetricsRecorder) *Dispatcher {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}

	d := &Dispatcher{
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		events:  make(chan Event, bufferSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// OnConfirmed ставит в очередь уведомление о подтверждении записи
func (d *Dispatcher) OnConfirmed(appt *domain.Appointment) {
	d.enqueue(NewEvent(domain.EventAppointmentConfirmed, appt, d.now()))
}

// OnCancelled ставит в очередь уведомление об отмене записи
func (d *Dispatcher) OnCancelled(appt *domain.Appointment) {
	d.enqueue(NewEvent(domain.EventAppointmentCancelled, appt, d.now()))
}

// Shutdown прекращает прием событий и ждет обработки очереди не дольше timeout
func (d *Dispatcher) Shutdown(timeout time.Duration) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.events)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		d.logger.Warn("NotificationDispatcher: shutdown timed out, some notifications may be lost")
	}
}

func (d *Dispatcher) enqueue(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("NotificationDispatcher: dispatcher stopped, dropping %s for %s",
			event.Type, event.Payload.BookingReference)
		d.metrics.RecordNotification(d.sink.Name(), resultDropped)
		return
	}

	select {
	case d.events <- event:
	default:
		d.logger.Warn("NotificationDispatcher: buffer full, dropping %s for %s",
			event.Type, event.Payload.BookingReference)
		d.metrics.RecordNotification(d.sink.Name(), resultDropped)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for event := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sink.Send(ctx, event)
		cancel()

		if err != nil {
			d.logger.Error("NotificationDispatcher: failed to send %s for %s via %s: %v",
				event.Type, event.Payload.BookingReference, d.sink.Name(), err)
			d.metrics.RecordNotification(d.sink.Name(), resultFailed)
			continue
		}
		d.metrics.RecordNotification(d.sink.Name(), resultSent)
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordNotification(string, string) {}
