package create_appointment

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBranchNotFound возвращается, когда филиал не найден
	ErrBranchNotFound = domain.NewNotFound("Branch not found")

	// ErrDateTimeInPast возвращается, когда время записи не в будущем
	ErrDateTimeInPast = domain.NewBadRequest("Appointment must be in the future")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

// invalidInput строит ошибку валидации с сообщением для клиента
func invalidInput(message string) error {
	return errors.Join(domain.NewBadRequest(message), ErrInvalidInput)
}
