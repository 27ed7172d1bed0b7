package uow

import (
	"context"

	"koperasi-core/internal/domain/account"
	"koperasi-core/internal/domain/journal"
	"koperasi-core/internal/domain/loan"
	"koperasi-core/internal/domain/provision"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Accounts   account.Repository
	Journals   journal.Repository
	Sequences  journal.SequenceRepository
	Loans      loan.Repository
	Provisions provision.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn inside a single transaction; all writes commit or none do.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then runs fn in the same transaction.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
}
