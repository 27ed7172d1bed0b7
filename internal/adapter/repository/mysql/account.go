package mysql

import (
	"context"

	accountDomain "koperasi-core/internal/domain/account"

	"gorm.io/gorm"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) Save(ctx context.Context, a *accountDomain.Account) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*accountDomain.Account, error) {
	var out accountDomain.Account
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) List(ctx context.Context) ([]accountDomain.Account, error) {
	var out []accountDomain.Account
	res := r.db.WithContext(ctx).Order("code ASC").Find(&out)
	return out, res.Error
}
