package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис поиска записей клиентом
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Lookup находит запись по email клиента и номеру бронирования.
// Несовпадение email неотличимо от отсутствия записи.
func (s *Service) Lookup(ctx context.Context, email, reference string) (*models.AppointmentResponse, error) {
	email = strings.TrimSpace(email)
	reference = strings.ToUpper(strings.TrimSpace(reference))

	if email == "" || reference == "" {
		return nil, fmt.Errorf("%w: email and booking reference are required", ErrInvalidInput)
	}

	s.logger.Info("Lookup: reference=%s", reference)

	appt, err := s.repo.FindByEmailAndReference(ctx, email, reference)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Lookup: appointment reference=%s not found", reference)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Lookup: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}
