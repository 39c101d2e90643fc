package reference

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeRepo struct {
	existsFn func(ref string) (bool, error)
	calls    int
}

func (f *fakeRepo) ExistsByReference(_ context.Context, ref string) (bool, error) {
	f.calls++
	return f.existsFn(ref)
}

func TestGenerate_Format(t *testing.T) {
	repo := &fakeRepo{existsFn: func(string) (bool, error) { return false, nil }}
	g := NewGenerator(repo, 5, logger.NewNop())

	ref, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^BK[A-Z0-9]{8}$`, ref)
	assert.True(t, IsValid(ref))
	assert.Equal(t, 1, repo.calls)
}

func TestGenerate_ThousandDistinct(t *testing.T) {
	issued := make(map[string]struct{})
	repo := &fakeRepo{existsFn: func(ref string) (bool, error) {
		_, ok := issued[ref]
		return ok, nil
	}}
	g := NewGenerator(repo, 5, logger.NewNop())

	for i := 0; i < 1000; i++ {
		ref, err := g.Generate(context.Background())
		require.NoError(t, err)
		issued[ref] = struct{}{}
	}

	assert.Len(t, issued, 1000)
}

func TestGenerate_RetriesOnCollision(t *testing.T) {
	repo := &fakeRepo{}
	repo.existsFn = func(string) (bool, error) { return repo.calls < 3, nil }
	g := NewGenerator(repo, 5, logger.NewNop())

	ref, err := g.Generate(context.Background())
	require.NoError(t, err)
	assert.True(t, IsValid(ref))
	assert.Equal(t, 3, repo.calls)
}

func TestGenerate_Exhausted(t *testing.T) {
	repo := &fakeRepo{existsFn: func(string) (bool, error) { return true, nil }}
	g := NewGenerator(repo, 5, logger.NewNop())

	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, ErrReferenceExhausted)
	assert.Equal(t, 5, repo.calls)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
	assert.Equal(t, "Failed to generate unique reference", err.Error())
}

func TestGenerate_StorageError(t *testing.T) {
	repo := &fakeRepo{existsFn: func(string) (bool, error) { return false, errors.New("db down") }}
	g := NewGenerator(repo, 5, logger.NewNop())

	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, ErrInternal)
}

func TestGenerate_EntropyFailure(t *testing.T) {
	repo := &fakeRepo{existsFn: func(string) (bool, error) { return false, nil }}
	g := NewGenerator(repo, 5, logger.NewNop())
	g.newUUID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }

	_, err := g.Generate(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, repo.calls)
}

func TestCandidate(t *testing.T) {
	id := uuid.MustParse("3f2a9c1e-7b4d-4e8f-9a0b-1c2d3e4f5a6b")
	assert.Equal(t, "BK3F2A9C1E", Candidate(id))
}

func TestIsValid(t *testing.T) {
	cases := map[string]bool{
		"BK3F2A9C1E":  true,
		"BK12345678":  true,
		"bk3f2a9c1e":  false,
		"BK3F2A9C1":   false,
		"BK3F2A9C1E0": false,
		"XX3F2A9C1E":  false,
		"":            false,
	}
	for ref, want := range cases {
		assert.Equal(t, want, IsValid(ref), ref)
	}
}
