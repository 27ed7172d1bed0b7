package journalmock

import (
	"context"
	"time"

	domain "koperasi-core/internal/domain/journal"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)
var _ domain.SequenceRepository = (*Sequences)(nil)

// Repo is a function-backed mock that satisfies journal.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, e *domain.Entry) error
	GetByEntryIDFn        func(ctx context.Context, entryID string) (*domain.Entry, error)
	SaveFn                func(ctx context.Context, e *domain.Entry) error
	ListPostedByAccountFn func(ctx context.Context, accountCode string, from, to time.Time) ([]domain.PostedLine, error)
	SumPostedByAccountFn  func(ctx context.Context, asOf time.Time) ([]domain.AccountTotal, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) GetByEntryID(ctx context.Context, entryID string) (*domain.Entry, error) {
	if m.GetByEntryIDFn != nil {
		return m.GetByEntryIDFn(ctx, entryID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) Save(ctx context.Context, e *domain.Entry) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListPostedByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]domain.PostedLine, error) {
	if m.ListPostedByAccountFn != nil {
		return m.ListPostedByAccountFn(ctx, accountCode, from, to)
	}
	return nil, nil
}

func (m *Repo) SumPostedByAccount(ctx context.Context, asOf time.Time) ([]domain.AccountTotal, error) {
	if m.SumPostedByAccountFn != nil {
		return m.SumPostedByAccountFn(ctx, asOf)
	}
	return nil, nil
}

// Sequences hands out 1, 2, 3, ... per scope, in memory.
type Sequences struct {
	NextFn func(ctx context.Context, scope string) (int, error)
	last   map[string]int
}

func (m *Sequences) Next(ctx context.Context, scope string) (int, error) {
	if m.NextFn != nil {
		return m.NextFn(ctx, scope)
	}
	if m.last == nil {
		m.last = make(map[string]int)
	}
	m.last[scope]++
	return m.last[scope], nil
}
