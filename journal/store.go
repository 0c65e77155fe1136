package journal

import (
	"context"
	"time"

	"github.com/xraph/shopbook/id"
)

// Store persists journal entries.
type Store interface {
	Create(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, entryID id.EntryID) (*Entry, error)
	List(ctx context.Context, shopID string, opts ListOpts) ([]*Entry, error)
	Update(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, entryID id.EntryID) error

	// CountForAccount reports how many entries in the shop debit or
	// credit the given account.
	CountForAccount(ctx context.Context, shopID string, accountID id.AccountID) (int64, error)
}

// ListOpts filters entry listings. Zero values mean "no filter".
type ListOpts struct {
	Start     time.Time // inclusive lower bound on Date
	End       time.Time // exclusive upper bound on Date
	AccountID id.AccountID
	Category  Category
	Limit     int
	Offset    int
}
