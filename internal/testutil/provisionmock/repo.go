package provisionmock

import (
	"context"

	domain "koperasi-core/internal/domain/provision"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies provision.Repository.
type Repo struct {
	UpsertFn             func(ctx context.Context, r *domain.Record) error
	GetByLoanAndPeriodFn func(ctx context.Context, loanNumericID uint64, periodMonth string) (*domain.Record, error)
	ListByPeriodFn       func(ctx context.Context, periodMonth string) ([]domain.Record, error)
}

func (m *Repo) Upsert(ctx context.Context, r *domain.Record) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByLoanAndPeriod(ctx context.Context, loanNumericID uint64, periodMonth string) (*domain.Record, error) {
	if m.GetByLoanAndPeriodFn != nil {
		return m.GetByLoanAndPeriodFn(ctx, loanNumericID, periodMonth)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListByPeriod(ctx context.Context, periodMonth string) ([]domain.Record, error) {
	if m.ListByPeriodFn != nil {
		return m.ListByPeriodFn(ctx, periodMonth)
	}
	return nil, nil
}
