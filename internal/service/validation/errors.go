package validation

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrCapacityExceeded слот уже заполнен
	ErrCapacityExceeded = domain.NewBadRequest("Selected time slot is not available")

	// ErrBranchUnknown филиал не найден при проверке слота
	ErrBranchUnknown = domain.NewNotFound("Branch not found")

	// ErrOutsideOperatingHours запись выходит за рабочие часы филиала
	ErrOutsideOperatingHours = domain.NewBadRequest("Appointment time is outside branch operating hours")

	// ErrAlreadyCancelled запись уже отменена
	ErrAlreadyCancelled = domain.NewBadRequest("Appointment is already cancelled")

	// ErrCannotCancelCompleted запись уже завершена
	ErrCannotCancelCompleted = domain.NewBadRequest("Cannot cancel a completed appointment")

	// ErrCannotCancelNoShow клиент не пришел на запись
	ErrCannotCancelNoShow = domain.NewBadRequest("Cannot cancel a no-show appointment")

	// ErrPastAppointment запись уже в прошлом
	ErrPastAppointment = domain.NewBadRequest("Cannot cancel past appointments")

	// ErrInternal возвращается при ошибках хранилища
	ErrInternal = errors.New("validation: internal error")
)
