package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AppointmentService/internal/service/reference"
	"github.com/m04kA/SMC-AppointmentService/internal/service/validation"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

var (
	fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	slotAt   = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []*domain.Appointment
}

func (n *recordingNotifier) OnConfirmed(appt *domain.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.confirmed = append(n.confirmed, appt)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.confirmed)
}

type nopMetrics struct{}

func (nopMetrics) RecordAppointmentEvent(string) {}
func (nopMetrics) RecordRejection(string)        {}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier
	uc       *UseCase
}

func newFixture(capacity int) *fixture {
	store := memory.NewStore()
	store.SeedBranches(&domain.Branch{
		ID:                               1,
		Code:                             "CPT",
		Name:                             "Cape Town Central",
		OpeningTime:                      types.MustTimeString("08:00"),
		ClosingTime:                      types.MustTimeString("17:00"),
		MaxConcurrentAppointmentsPerSlot: capacity,
		IsActive:                         true,
	})

	log := logger.NewNop()
	appts := store.Appointments()
	notifier := &recordingNotifier{}

	uc := NewUseCase(
		appts,
		store.Branches(),
		validation.NewValidator(store.Branches(), appts, log),
		reference.NewGenerator(appts, domain.DefaultReferenceAttempts, log),
		notifier,
		store.TxManager(),
		nopMetrics{},
		log,
	).WithTimeProvider(fixedClock{now: fixedNow})

	return &fixture{store: store, notifier: notifier, uc: uc}
}

func (f *fixture) seed(t *testing.T, at time.Time, status domain.AppointmentStatus, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		ref, err := reference.NewGenerator(f.store.Appointments(), 5, logger.NewNop()).Generate(context.Background())
		require.NoError(t, err)
		_, err = f.store.Appointments().Save(context.Background(), &domain.Appointment{
			BookingReference:    ref,
			BranchID:            1,
			CustomerEmail:       "seed@example.com",
			AppointmentDateTime: at,
			DurationMinutes:     30,
			Status:              status,
		})
		require.NoError(t, err)
	}
}

func validRequest() *Request {
	return &Request{
		BranchID:            1,
		FirstName:           "John",
		LastName:            "Doe",
		Email:               "john.doe@example.com",
		PhoneNumber:         "+27 82 123 4567",
		AppointmentDateTime: slotAt,
		DurationMinutes:     30,
		Purpose:             ptr.Ptr("Account opening"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(3)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	appt := resp.Appointment
	assert.NotZero(t, appt.ID)
	assert.True(t, reference.IsValid(appt.BookingReference))
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, fixedNow, appt.CreatedAt)
	assert.Equal(t, fixedNow, appt.UpdatedAt)
	assert.Equal(t, "Account opening", *appt.Purpose)
	assert.Equal(t, 1, f.notifier.count())

	stored, err := f.store.Appointments().FindByReference(context.Background(), appt.BookingReference)
	require.NoError(t, err)
	assert.Equal(t, appt.ID, stored.ID)
}

func TestExecute_InvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *Request)
		message string
	}{
		{"missing branch", func(r *Request) { r.BranchID = 0 }, "Branch is required"},
		{"blank first name", func(r *Request) { r.FirstName = "  " }, "First name is required"},
		{"blank last name", func(r *Request) { r.LastName = "" }, "Last name is required"},
		{"invalid email", func(r *Request) { r.Email = "not-an-email" }, "Email must be valid"},
		{"invalid phone", func(r *Request) { r.PhoneNumber = "call me" }, "Phone number format is invalid"},
		{"phone too long", func(r *Request) { r.PhoneNumber = "+27 82 123 4567 8901 23" }, "Phone number must not exceed 20 characters"},
		{"missing date", func(r *Request) { r.AppointmentDateTime = time.Time{} }, "Appointment date and time is required"},
		{"short duration", func(r *Request) { r.DurationMinutes = 10 }, "Appointment duration must be at least 15 minutes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(3)
			req := validRequest()
			tc.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
			assert.Equal(t, tc.message, domain.MessageOf(err))
			assert.Zero(t, f.notifier.count())
		})
	}
}

func TestExecute_PastDateTime(t *testing.T) {
	f := newFixture(3)
	req := validRequest()
	req.AppointmentDateTime = fixedNow.Add(-time.Hour)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDateTimeInPast)
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
}

func TestExecute_BranchNotFound(t *testing.T) {
	f := newFixture(3)
	req := validRequest()
	req.BranchID = 42

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrBranchNotFound)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestExecute_SlotFull(t *testing.T) {
	f := newFixture(3)
	f.seed(t, slotAt, domain.StatusConfirmed, 3)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, validation.ErrCapacityExceeded)
	assert.False(t, domain.IsRetryable(err))
	assert.Zero(t, f.notifier.count())
}

func TestExecute_CancelledDoNotCountAgainstCapacity(t *testing.T) {
	f := newFixture(1)
	f.seed(t, slotAt, domain.StatusCancelled, 2)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_OutsideOperatingHours(t *testing.T) {
	f := newFixture(3)
	req := validRequest()
	req.AppointmentDateTime = time.Date(2026, 3, 11, 7, 30, 0, 0, time.UTC)

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, validation.ErrOutsideOperatingHours)

	count, err := f.store.Appointments().CountActiveAtExactTime(context.Background(), 1, req.AppointmentDateTime)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExecute_ConcurrentCreatesAtLastSeat(t *testing.T) {
	const attempts = 10

	f := newFixture(3)
	f.seed(t, slotAt, domain.StatusConfirmed, 2)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), validRequest())

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, validation.ErrCapacityExceeded):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, rejected)

	count, err := f.store.Appointments().CountActiveAtExactTime(context.Background(), 1, slotAt)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 1, f.notifier.count())
}

type conflictingTxManager struct{}

func (conflictingTxManager) DoSerializable(context.Context, func(context.Context) error) error {
	return txmanager.ErrSerializationFailure
}

func TestExecute_SerializationFailureIsRetryableCapacity(t *testing.T) {
	f := newFixture(3)
	f.uc.txManager = conflictingTxManager{}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, validation.ErrCapacityExceeded)
	assert.True(t, domain.IsRetryable(err))
	assert.Equal(t, domain.KindBadRequest, domain.KindOf(err))
	assert.Zero(t, f.notifier.count())
}

type fixedReference string

func (r fixedReference) Generate(context.Context) (string, error) { return string(r), nil }

func TestExecute_DuplicateReferenceIsInternal(t *testing.T) {
	f := newFixture(3)
	f.uc.references = fixedReference("BKAAAA1111")

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.AppointmentDateTime = slotAt.Add(30 * time.Minute)
	_, err = f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.Equal(t, 1, f.notifier.count())
}

func TestExecute_ReferenceExhausted(t *testing.T) {
	f := newFixture(3)
	f.uc.references = exhaustedGenerator{}

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, reference.ErrReferenceExhausted)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

type exhaustedGenerator struct{}

func (exhaustedGenerator) Generate(context.Context) (string, error) {
	return "", reference.ErrReferenceExhausted
}
