package account

import "context"

type Repository interface {
	Create(ctx context.Context, a *Account) error
	GetByCode(ctx context.Context, code string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Save(ctx context.Context, a *Account) error
}
