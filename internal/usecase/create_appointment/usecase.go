package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validation"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

const (
	rejectionInvalidInput = "invalid_input"
	rejectionPast         = "past_date_time"
	rejectionCapacity     = "capacity_exceeded"
	rejectionHours        = "outside_operating_hours"
	rejectionBranch       = "branch_not_found"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	branchRepo      BranchRepository
	validator       Validator
	references      ReferenceGenerator
	notifier        Notifier
	txManager       TransactionManager
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	branchRepo BranchRepository,
	validator Validator,
	references ReferenceGenerator,
	notifier Notifier,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		branchRepo:      branchRepo,
		validator:       validator,
		references:      references,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи.
// Проверка вместимости и вставка выполняются в одной сериализуемой транзакции
// под блокировкой ключа (филиал, время), поэтому слот не может быть переполнен.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: branch=%d, dateTime=%s, duration=%d",
		req.BranchID, req.AppointmentDateTime.Format(domain.LocalDateTimeFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %s", domain.MessageOf(err))
		uc.metrics.RecordRejection(rejectionInvalidInput)
		return nil, err
	}

	// 2. Время записи должно быть в будущем
	now := uc.timeProvider.Now()
	if err := validateFuture(req.AppointmentDateTime, now); err != nil {
		uc.logger.Warn("CreateAppointment: dateTime %s is not in the future",
			req.AppointmentDateTime.Format(domain.LocalDateTimeFormat))
		uc.metrics.RecordRejection(rejectionPast)
		return nil, err
	}

	var saved *domain.Appointment

	// 3. Проверки и сохранение в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем ключ слота до конца транзакции
		if err := uc.appointmentRepo.LockSlot(txCtx, req.BranchID, req.AppointmentDateTime); err != nil {
			uc.logger.Error("CreateAppointment: failed to lock slot: %v", err)
			return fmt.Errorf("%w: failed to lock slot: %w", ErrInternal, err)
		}

		// 3.2. Получаем филиал
		branch, err := uc.branchRepo.FindByID(txCtx, req.BranchID)
		if err != nil {
			if errors.Is(err, branchRepo.ErrBranchNotFound) {
				uc.logger.Warn("CreateAppointment: branch id=%d not found", req.BranchID)
				return ErrBranchNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get branch id=%d: %v", req.BranchID, err)
			return fmt.Errorf("%w: failed to get branch: %w", ErrInternal, err)
		}

		// 3.3. Проверяем вместимость слота
		if err := uc.validator.ValidateSlotAvailable(txCtx, req.BranchID, req.AppointmentDateTime); err != nil {
			return err
		}

		// 3.4. Проверяем рабочие часы
		if err := uc.validator.ValidateWithinOperatingHours(branch, req.AppointmentDateTime, req.DurationMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: %s for %d min is outside %s-%s at branch id=%d",
				req.AppointmentDateTime.Format(domain.LocalDateTimeFormat), req.DurationMinutes,
				branch.OpeningTime, branch.ClosingTime, branch.ID)
			return err
		}

		// 3.5. Генерируем номер бронирования
		reference, err := uc.references.Generate(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to generate reference: %v", err)
			return err
		}

		// 3.6. Сохраняем запись
		appt := &domain.Appointment{
			BookingReference:    reference,
			BranchID:            req.BranchID,
			CustomerFirstName:   strings.TrimSpace(req.FirstName),
			CustomerLastName:    strings.TrimSpace(req.LastName),
			CustomerEmail:       strings.TrimSpace(req.Email),
			CustomerPhone:       strings.TrimSpace(req.PhoneNumber),
			AppointmentDateTime: req.AppointmentDateTime,
			DurationMinutes:     req.DurationMinutes,
			Purpose:             req.Purpose,
			Notes:               req.Notes,
			Status:              domain.StatusConfirmed,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		created, err := uc.appointmentRepo.Save(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to save appointment: %v", err)
			return fmt.Errorf("%w: failed to save appointment: %w", ErrInternal, err)
		}

		saved = created
		return nil
	})

	if err != nil {
		return nil, uc.mapError(err)
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, reference=%s", saved.ID, saved.BookingReference)
	uc.metrics.RecordAppointmentEvent(domain.EventAppointmentConfirmed)

	// 4. Уведомление только после фиксации транзакции
	uc.notifier.OnConfirmed(saved.Clone())

	return &Response{Appointment: saved}, nil
}

// mapError приводит ошибки транзакции к ошибкам use case
func (uc *UseCase) mapError(err error) error {
	switch {
	case errors.Is(err, txmanager.ErrSerializationFailure):
		uc.logger.Warn("CreateAppointment: serialization conflicts exhausted retries: %v", err)
		uc.metrics.RecordRejection(rejectionCapacity)
		return fmt.Errorf("%w: %w", validation.ErrCapacityExceeded, domain.ErrRetryable)
	case errors.Is(err, validation.ErrCapacityExceeded):
		uc.metrics.RecordRejection(rejectionCapacity)
		return err
	case errors.Is(err, validation.ErrOutsideOperatingHours):
		uc.metrics.RecordRejection(rejectionHours)
		return err
	case errors.Is(err, ErrBranchNotFound), errors.Is(err, validation.ErrBranchUnknown):
		uc.metrics.RecordRejection(rejectionBranch)
		return ErrBranchNotFound
	case errors.Is(err, appointmentRepo.ErrDuplicateReference):
		return fmt.Errorf("%w: %v", ErrInternal, err)
	default:
		return err
	}
}
