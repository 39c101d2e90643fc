package get_available_slots

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = domain.NewNotFound("Branch not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewBadRequest("Branch and date are required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
