package notification

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// LogSink имитирует отправку писем и SMS, записывая их в лог
type LogSink struct {
	logger Logger
}

// NewLogSink создает имитирующий канал
func NewLogSink(logger Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Send(_ context.Context, event Event) error {
	p := event.Payload
	when := p.AppointmentDateTime.Format(domain.LocalDateTimeFormat)

	switch event.Type {
	case domain.EventAppointmentConfirmed:
		s.logger.Info("[SIMULATED] Confirmation email to %s: appointment %s confirmed for %s at branch %d",
			p.CustomerEmail, p.BookingReference, when, p.BranchID)
		if p.CustomerPhone != "" {
			s.logger.Info("[SIMULATED] Confirmation SMS to %s: booking %s on %s",
				p.CustomerPhone, p.BookingReference, when)
		}
	case domain.EventAppointmentCancelled:
		reason := ""
		if p.CancellationReason != nil {
			reason = *p.CancellationReason
		}
		s.logger.Info("[SIMULATED] Cancellation email to %s: appointment %s on %s cancelled (%s)",
			p.CustomerEmail, p.BookingReference, when, reason)
	default:
		s.logger.Warn("[SIMULATED] Unknown event type %s for %s", event.Type, p.BookingReference)
	}

	return nil
}
