package cancel_appointment

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена или email не совпал
	ErrAppointmentNotFound = domain.NewNotFound("Appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

func invalidInput(message string) error {
	return errors.Join(domain.NewBadRequest(message), ErrInvalidInput)
}
