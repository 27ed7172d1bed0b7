package mysql

import (
	"context"
	"errors"

	provisionDomain "koperasi-core/internal/domain/provision"

	"gorm.io/gorm"
)

type ProvisionRepository struct{ db *gorm.DB }

func NewProvisionRepository(db *gorm.DB) *ProvisionRepository { return &ProvisionRepository{db: db} }

// Upsert replaces the existing (loan, period) record in place so a re-run of
// the same period is idempotent.
func (r *ProvisionRepository) Upsert(ctx context.Context, rec *provisionDomain.Record) error {
	var existing provisionDomain.Record
	err := r.db.WithContext(ctx).
		Where("loan_id = ? AND period_month = ?", rec.LoanID, rec.PeriodMonth).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(rec).Error
	}
	if err != nil {
		return err
	}

	rec.ID = existing.ID
	rec.ProvisionID = existing.ProvisionID
	rec.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *ProvisionRepository) GetByLoanAndPeriod(ctx context.Context, loanNumericID uint64, periodMonth string) (*provisionDomain.Record, error) {
	var out provisionDomain.Record
	res := r.db.WithContext(ctx).
		Where("loan_id = ? AND period_month = ?", loanNumericID, periodMonth).
		First(&out)
	return &out, res.Error
}

func (r *ProvisionRepository) ListByPeriod(ctx context.Context, periodMonth string) ([]provisionDomain.Record, error) {
	var out []provisionDomain.Record
	res := r.db.WithContext(ctx).
		Where("period_month = ?", periodMonth).
		Order("loan_id ASC").
		Find(&out)
	return out, res.Error
}
