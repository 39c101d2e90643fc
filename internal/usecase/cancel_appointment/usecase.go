package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case для отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	validator       Validator
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	defaultReason   string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// defaultReason подставляется, если клиент не указал причину.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	validator Validator,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	defaultReason string,
	logger Logger,
) *UseCase {
	if strings.TrimSpace(defaultReason) == "" {
		defaultReason = domain.DefaultCancellationReason
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		validator:       validator,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		defaultReason:   defaultReason,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case отмены записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	reference := strings.ToUpper(strings.TrimSpace(req.BookingReference))
	uc.logger.Info("CancelAppointment: reference=%s", reference)

	// 1. Валидация входных данных
	if reference == "" {
		return nil, invalidInput("Booking reference is required")
	}

	reason := uc.defaultReason
	if req.Reason != nil && strings.TrimSpace(*req.Reason) != "" {
		reason = strings.TrimSpace(*req.Reason)
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return nil, invalidInput(fmt.Sprintf("Cancellation reason must not exceed %d characters",
			domain.MaxCancellationReasonLength))
	}

	var saved *domain.Appointment

	// 2. Чтение, проверка и запись в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем запись с блокировкой строки
		appt, err := uc.appointmentRepo.FindByReferenceForUpdate(txCtx, reference)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: reference=%s not found", reference)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment reference=%s: %v", reference, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		// 2.2. Email должен совпадать с указанным при записи
		email := strings.TrimSpace(req.Email)
		if email != "" && !strings.EqualFold(appt.CustomerEmail, email) {
			uc.logger.Warn("CancelAppointment: email mismatch for reference=%s", reference)
			return ErrAppointmentNotFound
		}

		// 2.3. Проверяем, что запись можно отменить
		now := uc.timeProvider.Now()
		if err := uc.validator.ValidateCancellable(appt, now); err != nil {
			uc.logger.Warn("CancelAppointment: reference=%s in status %s cannot be cancelled: %v",
				reference, appt.Status, err)
			return err
		}

		// 2.4. Отменяем и сохраняем
		appt.Cancel(reason, now)

		updated, err := uc.appointmentRepo.Save(txCtx, appt)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to save appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to save appointment: %w", ErrInternal, err)
		}

		saved = updated
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.logger.Info("CancelAppointment: cancelled appointment id=%d, reference=%s", saved.ID, saved.BookingReference)
	uc.metrics.RecordAppointmentEvent(domain.EventAppointmentCancelled)

	// 3. Уведомление только после фиксации транзакции
	uc.notifier.OnCancelled(saved.Clone())

	return &Response{Appointment: saved}, nil
}

func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CancelAppointment: serialization conflicts exhausted retries: %v", err)
		return fmt.Errorf("%w: %w: %v", ErrInternal, domain.ErrRetryable, err)
	case errors.Is(err, ErrAppointmentNotFound):
		return err
	case domain.KindOf(err) == domain.KindBadRequest:
		uc.metrics.RecordRejection("not_cancellable")
		return err
	default:
		return err
	}
}
