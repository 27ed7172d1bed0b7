package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingByMemberID(ctx context.Context, memberID string) (*Loan, error)
	ListActive(ctx context.Context) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error

	CreateInstallments(ctx context.Context, items []Installment) error
	ListInstallments(ctx context.Context, loanNumericID uint64) ([]Installment, error)
	// FirstUnpaidInstallment returns the earliest unpaid installment by number.
	FirstUnpaidInstallment(ctx context.Context, loanNumericID uint64) (*Installment, error)
	SaveInstallment(ctx context.Context, i *Installment) error

	CreatePayment(ctx context.Context, p *Payment) error
	ListPayments(ctx context.Context, loanNumericID uint64) ([]Payment, error)
}
