package branches

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = domain.NewNotFound("Branch not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("branches service: internal error")
)
