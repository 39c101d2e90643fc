package appointments

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = domain.NewNotFound("Appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = domain.NewBadRequest("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("appointments service: internal error")
)
