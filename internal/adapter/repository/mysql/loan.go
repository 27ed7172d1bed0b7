package mysql

import (
	"context"

	loanDomain "koperasi-core/internal/domain/loan"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByLoanID(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("loan_id = ?", loanID).First(&out)
	return &out, res.Error
}

// GetByLoanIDForUpdate locks the loan row up-front so lifecycle transitions
// and payments serialize per loan.
func (r *LoanRepository) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("loan_id = ?", loanID).
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetPendingByMemberID(ctx context.Context, memberID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("member_id = ? AND state = ?", memberID, loanDomain.StatePending).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) ListActive(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("state = ?", loanDomain.StateActive).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) CreateInstallments(ctx context.Context, items []loanDomain.Installment) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *LoanRepository) ListInstallments(ctx context.Context, loanNumericID uint64) ([]loanDomain.Installment, error) {
	var out []loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("number ASC").
		Find(&out)
	return out, res.Error
}

func (r *LoanRepository) FirstUnpaidInstallment(ctx context.Context, loanNumericID uint64) (*loanDomain.Installment, error) {
	var out loanDomain.Installment
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND paid = ?", loanNumericID, false).
		Order("number ASC").
		First(&out)
	return &out, res.Error
}

func (r *LoanRepository) SaveInstallment(ctx context.Context, i *loanDomain.Installment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *LoanRepository) CreatePayment(ctx context.Context, p *loanDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *LoanRepository) ListPayments(ctx context.Context, loanNumericID uint64) ([]loanDomain.Payment, error) {
	var out []loanDomain.Payment
	res := r.db.WithContext(ctx).
		Where("loan_id = ?", loanNumericID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
