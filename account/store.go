package account

import (
	"context"

	"github.com/xraph/shopbook/id"
)

type Store interface {
	Create(ctx context.Context, a *Account) error
	Get(ctx context.Context, accountID id.AccountID) (*Account, error)
	List(ctx context.Context, shopID string, opts ListOpts) ([]*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, accountID id.AccountID) error
}

type ListOpts struct {
	Type   Type
	Limit  int
	Offset int
}
