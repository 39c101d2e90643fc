package memory

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Store хранилище в памяти для локального запуска и тестов.
// Транзакции выполняются строго последовательно, при ошибке изменения откатываются.
type Store struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	branches     map[int64]*domain.Branch
	appointments map[int64]*domain.Appointment
	nextID       int64
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		branches:     make(map[int64]*domain.Branch),
		appointments: make(map[int64]*domain.Appointment),
	}
}

// SeedBranches добавляет (или заменяет) филиалы
func (s *Store) SeedBranches(branches ...*domain.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range branches {
		c := *b
		s.branches[b.ID] = &c
	}
}

// Branches возвращает репозиторий филиалов
func (s *Store) Branches() *BranchRepository {
	return &BranchRepository{store: s}
}

// Appointments возвращает репозиторий записей
func (s *Store) Appointments() *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

// TxManager возвращает менеджер транзакций хранилища
func (s *Store) TxManager() *TxManager {
	return &TxManager{store: s}
}

type snapshot struct {
	appointments map[int64]*domain.Appointment
	nextID       int64
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		appointments: make(map[int64]*domain.Appointment, len(s.appointments)),
		nextID:       s.nextID,
	}
	for id, a := range s.appointments {
		snap.appointments[id] = a.Clone()
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.appointments = snap.appointments
	s.nextID = snap.nextID
}

type txKey struct{}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// TxManager менеджер транзакций для Store
type TxManager struct {
	store *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoSerializable выполняет fn в транзакции. Все транзакции Store уже сериализованы.
func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()

	snap := m.store.snapshot()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.store.restore(snap)
		return err
	}

	return nil
}
