package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeRange struct {
	appointments []*domain.Appointment
	err          error

	calls    int
	branchID int64
	from, to time.Time
}

func (f *fakeRange) FindActiveByBranchAndTimeRange(_ context.Context, branchID int64, from, to time.Time) ([]*domain.Appointment, error) {
	f.calls++
	f.branchID, f.from, f.to = branchID, from, to
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

var oracleDay = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

func bookedAt(hour, minute int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		BranchID:            1,
		AppointmentDateTime: time.Date(2026, 3, 11, hour, minute, 0, 0, time.UTC),
		DurationMinutes:     30,
		Status:              status,
	}
}

func TestAnnotate_FullSlotUnavailable(t *testing.T) {
	b := branchWithHours("08:00", "17:00", 3)
	nineAM := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	repo := &fakeRange{appointments: []*domain.Appointment{
		bookedAt(9, 0, domain.StatusConfirmed),
		bookedAt(9, 0, domain.StatusConfirmed),
		bookedAt(9, 0, domain.StatusPending),
	}}
	o := NewOracle(repo, logger.NewNop())

	slots, err := o.Annotate(context.Background(), b, NewCalculator(30).ComputeSlots(b, oracleDay, fixedNow))
	require.NoError(t, err)
	require.Len(t, slots, 18)

	for _, s := range slots {
		if s.Start.Equal(nineAM) {
			assert.False(t, s.Available)
			assert.Equal(t, 3, s.CurrentBookings)
			assert.Equal(t, 3, s.MaxBookings)
			continue
		}
		assert.True(t, s.Available)
		assert.Equal(t, 0, s.CurrentBookings)
	}
}

func TestAnnotate_SingleRangeQuery(t *testing.T) {
	b := branchWithHours("08:00", "17:00", 3)
	repo := &fakeRange{}

	_, err := NewOracle(repo, logger.NewNop()).Annotate(context.Background(), b, NewCalculator(30).ComputeSlots(b, oracleDay, fixedNow))
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, int64(1), repo.branchID)
	assert.Equal(t, time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC), repo.from)
	assert.Equal(t, time.Date(2026, 3, 11, 17, 0, 0, 0, time.UTC), repo.to)
}

func TestAnnotate_AvailableIffBelowCapacity(t *testing.T) {
	b := branchWithHours("08:00", "10:00", 2)
	counts := []int{0, 1, 2, 5}

	var booked []*domain.Appointment
	for i, c := range counts {
		for n := 0; n < c; n++ {
			booked = append(booked, bookedAt(8+i/2, (i%2)*30, domain.StatusConfirmed))
		}
	}

	slots, err := NewOracle(&fakeRange{appointments: booked}, logger.NewNop()).
		Annotate(context.Background(), b, NewCalculator(30).ComputeSlots(b, oracleDay, fixedNow))
	require.NoError(t, err)
	require.Len(t, slots, 4)

	for j, s := range slots {
		assert.Equal(t, counts[j], s.CurrentBookings)
		assert.Equal(t, s.CurrentBookings < s.MaxBookings, s.Available)
	}
}

func TestAnnotate_CountsOnlyExactStartOfActive(t *testing.T) {
	b := branchWithHours("08:00", "09:00", 1)
	repo := &fakeRange{appointments: []*domain.Appointment{
		bookedAt(8, 15, domain.StatusConfirmed),
		bookedAt(8, 30, domain.StatusCancelled),
	}}

	slots, err := NewOracle(repo, logger.NewNop()).Annotate(context.Background(), b, NewCalculator(30).ComputeSlots(b, oracleDay, fixedNow))
	require.NoError(t, err)
	require.Len(t, slots, 2)

	for _, s := range slots {
		assert.Equal(t, 0, s.CurrentBookings)
		assert.True(t, s.Available)
	}
}

func TestAnnotate_NoSlotsNoQuery(t *testing.T) {
	repo := &fakeRange{}

	slots, err := NewOracle(repo, logger.NewNop()).Annotate(context.Background(), branchWithHours("08:00", "17:00", 3), nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Zero(t, repo.calls)
}

func TestAnnotate_StorageError(t *testing.T) {
	b := branchWithHours("08:00", "17:00", 3)
	repo := &fakeRange{err: errors.New("db down")}

	_, err := NewOracle(repo, logger.NewNop()).Annotate(context.Background(), b, NewCalculator(30).ComputeSlots(b, oracleDay, fixedNow))
	require.ErrorIs(t, err, ErrInternal)
}
