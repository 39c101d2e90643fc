package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
)

var slot = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

func newAppointment(reference string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		BookingReference:    reference,
		BranchID:            1,
		CustomerFirstName:   "Thandi",
		CustomerLastName:    "Nkosi",
		CustomerEmail:       "Thandi@Example.com",
		CustomerPhone:       "+27 82 000 0000",
		AppointmentDateTime: slot,
		DurationMinutes:     30,
		Status:              status,
	}
}

func TestStore_SaveAndFind(t *testing.T) {
	store := NewStore()
	repo := store.Appointments()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newAppointment("BKAAAA1111", domain.StatusConfirmed))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)

	found, err := repo.FindByEmailAndReference(ctx, "thandi@example.com", "BKAAAA1111")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)

	_, err = repo.FindByEmailAndReference(ctx, "other@example.com", "BKAAAA1111")
	assert.ErrorIs(t, err, appointment.ErrAppointmentNotFound)

	exists, err := repo.ExistsByReference(ctx, "BKAAAA1111")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Save(ctx, newAppointment("BKAAAA1111", domain.StatusConfirmed))
	assert.ErrorIs(t, err, appointment.ErrDuplicateReference)
}

func TestStore_ReturnsCopies(t *testing.T) {
	store := NewStore()
	repo := store.Appointments()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newAppointment("BKAAAA1111", domain.StatusConfirmed))
	require.NoError(t, err)

	saved.Cancel("changed outside", slot)

	found, err := repo.FindByReference(ctx, "BKAAAA1111")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, found.Status)
}

func TestStore_CountActiveAtExactTime(t *testing.T) {
	store := NewStore()
	repo := store.Appointments()
	ctx := context.Background()

	_, err := repo.Save(ctx, newAppointment("BKAAAA1111", domain.StatusConfirmed))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newAppointment("BKAAAA2222", domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newAppointment("BKAAAA3333", domain.StatusCancelled))
	require.NoError(t, err)

	count, err := repo.CountActiveAtExactTime(ctx, 1, slot)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	count, err = repo.CountActiveAtExactTime(ctx, 1, slot.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, count)

	inRange, err := repo.FindActiveByBranchAndTimeRange(ctx, 1, slot, slot.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, inRange, 2)
}

func TestTxManager_RollbackOnError(t *testing.T) {
	store := NewStore()
	repo := store.Appointments()
	tx := store.TxManager()
	ctx := context.Background()

	errAbort := errors.New("abort")
	err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
		require.NoError(t, repo.LockSlot(txCtx, 1, slot))
		_, err := repo.Save(txCtx, newAppointment("BKAAAA1111", domain.StatusConfirmed))
		require.NoError(t, err)
		return errAbort
	})
	assert.ErrorIs(t, err, errAbort)

	exists, err := repo.ExistsByReference(ctx, "BKAAAA1111")
	require.NoError(t, err)
	assert.False(t, exists)

	saved, err := repo.Save(ctx, newAppointment("BKAAAA2222", domain.StatusConfirmed))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}

func TestLockSlot_RequiresTransaction(t *testing.T) {
	store := NewStore()

	err := store.Appointments().LockSlot(context.Background(), 1, slot)
	assert.ErrorIs(t, err, appointment.ErrTransaction)
}

func TestBranchRepository(t *testing.T) {
	store := NewStore()
	store.SeedBranches(DemoBranches()...)
	repo := store.Branches()
	ctx := context.Background()

	b, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "JHB001", b.Code)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, branch.ErrBranchNotFound)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	firstPage, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	assert.Equal(t, "Cape Town Central", firstPage[0].Name)
	assert.Equal(t, "Durban Umhlanga", firstPage[1].Name)

	found, err := repo.Search(ctx, "sandton", 10, 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(2), found[0].ID)

	empty, err := repo.List(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
