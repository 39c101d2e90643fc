package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
)

// BranchRepository репозиторий филиалов поверх Store
type BranchRepository struct {
	store *Store
}

func (r *BranchRepository) FindByID(_ context.Context, id int64) (*domain.Branch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.branches[id]
	if !ok {
		return nil, branch.ErrBranchNotFound
	}
	c := *b
	return &c, nil
}

func (r *BranchRepository) List(_ context.Context, limit, offset int) ([]*domain.Branch, error) {
	return page(r.sorted(func(*domain.Branch) bool { return true }), limit, offset), nil
}

func (r *BranchRepository) Count(_ context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return int64(len(r.store.branches)), nil
}

func (r *BranchRepository) Search(_ context.Context, term string, limit, offset int) ([]*domain.Branch, error) {
	return page(r.sorted(matcher(term)), limit, offset), nil
}

func (r *BranchRepository) CountSearch(_ context.Context, term string) (int64, error) {
	return int64(len(r.sorted(matcher(term)))), nil
}

func (r *BranchRepository) sorted(keep func(*domain.Branch) bool) []*domain.Branch {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Branch, 0, len(r.store.branches))
	for _, b := range r.store.branches {
		if keep(b) {
			c := *b
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})

	return result
}

func matcher(term string) func(*domain.Branch) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(b *domain.Branch) bool {
		if !b.IsActive {
			return false
		}
		return strings.Contains(strings.ToLower(b.Name), needle) ||
			strings.Contains(strings.ToLower(b.Address), needle) ||
			strings.Contains(strings.ToLower(b.Code), needle)
	}
}

func page(items []*domain.Branch, limit, offset int) []*domain.Branch {
	if offset >= len(items) {
		return []*domain.Branch{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
