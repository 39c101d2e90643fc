package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
)

// UseCase use case для получения слотов филиала на дату
type UseCase struct {
	branchRepo   BranchRepository
	calculator   SlotCalculator
	oracle       AvailabilityOracle
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	branchRepo BranchRepository,
	calculator SlotCalculator,
	oracle AvailabilityOracle,
	logger Logger,
) *UseCase {
	return &UseCase{
		branchRepo:   branchRepo,
		calculator:   calculator,
		oracle:       oracle,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: branch=%d, date=%s", req.BranchID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем филиал
	branch, err := uc.branchRepo.FindByID(ctx, req.BranchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("GetAvailableSlots: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Нарезаем рабочее окно на слоты
	now := uc.timeProvider.Now()
	candidates := uc.calculator.ComputeSlots(branch, req.Date, now)

	// 4. Заполняем занятость
	slots, err := uc.oracle.Annotate(ctx, branch, candidates)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to annotate slots for branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to annotate slots: %v", ErrInternal, err)
	}

	available := 0
	for _, s := range slots {
		if s.Available {
			available++
		}
	}
	uc.logger.Info("GetAvailableSlots: branch=%d, date=%s, slots=%d, available=%d",
		req.BranchID, req.Date.Format(domain.DateFormat), len(slots), available)

	return &Response{
		Date:            req.Date,
		BranchID:        branch.ID,
		DurationMinutes: uc.calculator.DurationMinutes(),
		Slots:           slots,
	}, nil
}
