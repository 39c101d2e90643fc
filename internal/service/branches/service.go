package branches

import (
	"context"
	"errors"
	"fmt"
	"strings"

	branchRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-AppointmentService/internal/service/branches/models"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Service каталог филиалов
type Service struct {
	repo   BranchRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса филиалов
func NewService(repo BranchRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// GetByID получает филиал по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BranchResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			s.logger.Warn("GetByID: branch id=%d not found", id)
			return nil, ErrBranchNotFound
		}
		s.logger.Error("GetByID: repository error for branch id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBranch(b), nil
}

// List возвращает страницу всех филиалов
func (s *Service) List(ctx context.Context, page, size int) (*models.BranchListResponse, error) {
	page, size = normalizePage(page, size)

	items, err := s.repo.List(ctx, size, page*size)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("List: count error: %v", err)
		return nil, fmt.Errorf("%w: List - count error: %v", ErrInternal, err)
	}

	return models.FromDomainBranchPage(items, page, size, total), nil
}

// Search ищет активные филиалы по названию, адресу или коду.
// Пустой запрос возвращает пустую страницу.
func (s *Service) Search(ctx context.Context, query string, page, size int) (*models.BranchListResponse, error) {
	page, size = normalizePage(page, size)

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return models.FromDomainBranchPage(nil, page, size, 0), nil
	}

	s.logger.Info("Search: term=%q page=%d size=%d", term, page, size)

	items, err := s.repo.Search(ctx, term, size, page*size)
	if err != nil {
		s.logger.Error("Search: repository error: %v", err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	total, err := s.repo.CountSearch(ctx, term)
	if err != nil {
		s.logger.Error("Search: count error: %v", err)
		return nil, fmt.Errorf("%w: Search - count error: %v", ErrInternal, err)
	}

	return models.FromDomainBranchPage(items, page, size, total), nil
}

func normalizePage(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return page, size
}
