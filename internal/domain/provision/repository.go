package provision

import "context"

type Repository interface {
	// Upsert inserts or replaces the record for (loan, period).
	Upsert(ctx context.Context, r *Record) error
	GetByLoanAndPeriod(ctx context.Context, loanNumericID uint64, periodMonth string) (*Record, error)
	ListByPeriod(ctx context.Context, periodMonth string) ([]Record, error)
}
