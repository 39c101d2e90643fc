package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// AppointmentRepository репозиторий записей поверх Store
type AppointmentRepository struct {
	store *Store
}

func (r *AppointmentRepository) FindByReference(_ context.Context, reference string) (*domain.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.appointments {
		if a.BookingReference == reference {
			return a.Clone(), nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

// FindByReferenceForUpdate совпадает с FindByReference: строка защищена сериализацией транзакций
func (r *AppointmentRepository) FindByReferenceForUpdate(ctx context.Context, reference string) (*domain.Appointment, error) {
	return r.FindByReference(ctx, reference)
}

func (r *AppointmentRepository) FindByEmailAndReference(_ context.Context, email, reference string) (*domain.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	email = strings.TrimSpace(email)
	for _, a := range r.store.appointments {
		if a.BookingReference == reference && strings.EqualFold(a.CustomerEmail, email) {
			return a.Clone(), nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (r *AppointmentRepository) ExistsByReference(_ context.Context, reference string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, a := range r.store.appointments {
		if a.BookingReference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (r *AppointmentRepository) CountActiveAtExactTime(_ context.Context, branchID int64, at time.Time) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, a := range r.store.appointments {
		if a.BranchID == branchID && a.IsActive() && a.AppointmentDateTime.Equal(at) {
			count++
		}
	}
	return count, nil
}

func (r *AppointmentRepository) FindActiveByBranchAndTimeRange(_ context.Context, branchID int64, from, to time.Time) ([]*domain.Appointment, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var result []*domain.Appointment
	for _, a := range r.store.appointments {
		if a.BranchID != branchID || !a.IsActive() {
			continue
		}
		if a.AppointmentDateTime.Before(from) || !a.AppointmentDateTime.Before(to) {
			continue
		}
		result = append(result, a.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].AppointmentDateTime.Equal(result[j].AppointmentDateTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].AppointmentDateTime.Before(result[j].AppointmentDateTime)
	})

	return result, nil
}

// LockSlot требует активной транзакции, сама блокировка обеспечивается Store
func (r *AppointmentRepository) LockSlot(ctx context.Context, _ int64, _ time.Time) error {
	if !inTx(ctx) {
		return fmt.Errorf("%w: LockSlot", appointment.ErrTransaction)
	}
	return nil
}

func (r *AppointmentRepository) Save(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if appt.ID == 0 {
		for _, a := range r.store.appointments {
			if a.BookingReference == appt.BookingReference {
				return nil, fmt.Errorf("%w: %s", appointment.ErrDuplicateReference, appt.BookingReference)
			}
		}
		r.store.nextID++
		saved := appt.Clone()
		saved.ID = r.store.nextID
		r.store.appointments[saved.ID] = saved
		return saved.Clone(), nil
	}

	if _, ok := r.store.appointments[appt.ID]; !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	r.store.appointments[appt.ID] = appt.Clone()
	return appt.Clone(), nil
}
