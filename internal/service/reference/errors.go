package reference

import (
	"errors"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrReferenceExhausted возвращается, когда все попытки дали занятые номера
	ErrReferenceExhausted = domain.NewInternal("Failed to generate unique reference")

	// ErrInternal возвращается при ошибке источника случайности или хранилища
	ErrInternal = errors.New("reference: internal error")
)
