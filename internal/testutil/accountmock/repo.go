package accountmock

import (
	"context"
	"sync"

	domain "koperasi-core/internal/domain/account"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
type Repo struct {
	CreateFn    func(ctx context.Context, a *domain.Account) error
	GetByCodeFn func(ctx context.Context, code string) (*domain.Account, error)
	ListFn      func(ctx context.Context) ([]domain.Account, error)
	SaveFn      func(ctx context.Context, a *domain.Account) error
}

func (m *Repo) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Account, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, a *domain.Account) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

// InMemory is a map-backed repository preloaded with accounts, for tests that
// only need lookups to succeed.
type InMemory struct {
	mu   sync.RWMutex
	byCd map[string]domain.Account
}

var _ domain.Repository = (*InMemory)(nil)

func NewInMemory(accs ...domain.Account) *InMemory {
	m := &InMemory{byCd: make(map[string]domain.Account, len(accs))}
	for _, a := range accs {
		m.byCd[a.Code] = a
	}
	return m
}

func (m *InMemory) Create(ctx context.Context, a *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byCd[a.Code] = *a
	return nil
}

func (m *InMemory) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.byCd[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

func (m *InMemory) List(ctx context.Context) ([]domain.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Account, 0, len(m.byCd))
	for _, a := range m.byCd {
		out = append(out, a)
	}
	return out, nil
}

func (m *InMemory) Save(ctx context.Context, a *domain.Account) error {
	return m.Create(ctx, a)
}
