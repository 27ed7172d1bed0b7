package loanmock

import (
	"context"

	domain "koperasi-core/internal/domain/loan"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies loan.Repository.
// Getters default to gorm.ErrRecordNotFound, writers to a nil-error no-op.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingByMemberIDFn func(ctx context.Context, memberID string) (*domain.Loan, error)
	ListActiveFn           func(ctx context.Context) ([]domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error

	CreateInstallmentsFn     func(ctx context.Context, items []domain.Installment) error
	ListInstallmentsFn       func(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error)
	FirstUnpaidInstallmentFn func(ctx context.Context, loanNumericID uint64) (*domain.Installment, error)
	SaveInstallmentFn        func(ctx context.Context, i *domain.Installment) error

	CreatePaymentFn func(ctx context.Context, p *domain.Payment) error
	ListPaymentsFn  func(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetPendingByMemberID(ctx context.Context, memberID string) (*domain.Loan, error) {
	if m.GetPendingByMemberIDFn != nil {
		return m.GetPendingByMemberIDFn(ctx, memberID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) CreateInstallments(ctx context.Context, items []domain.Installment) error {
	if m.CreateInstallmentsFn != nil {
		return m.CreateInstallmentsFn(ctx, items)
	}
	return nil
}

func (m *Repo) ListInstallments(ctx context.Context, loanNumericID uint64) ([]domain.Installment, error) {
	if m.ListInstallmentsFn != nil {
		return m.ListInstallmentsFn(ctx, loanNumericID)
	}
	return nil, nil
}

func (m *Repo) FirstUnpaidInstallment(ctx context.Context, loanNumericID uint64) (*domain.Installment, error) {
	if m.FirstUnpaidInstallmentFn != nil {
		return m.FirstUnpaidInstallmentFn(ctx, loanNumericID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) SaveInstallment(ctx context.Context, i *domain.Installment) error {
	if m.SaveInstallmentFn != nil {
		return m.SaveInstallmentFn(ctx, i)
	}
	return nil
}

func (m *Repo) CreatePayment(ctx context.Context, p *domain.Payment) error {
	if m.CreatePaymentFn != nil {
		return m.CreatePaymentFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListPayments(ctx context.Context, loanNumericID uint64) ([]domain.Payment, error) {
	if m.ListPaymentsFn != nil {
		return m.ListPaymentsFn(ctx, loanNumericID)
	}
	return nil, nil
}
