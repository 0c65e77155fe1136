package store

import (
	"context"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
)

// Store is the unified storage interface for all shopbook entities.
// Instead of embedding the sub-interfaces, we explicitly declare all methods
// to avoid naming conflicts.
type Store interface {
	// Account methods
	CreateAccount(ctx context.Context, a *account.Account) error
	GetAccount(ctx context.Context, accountID id.AccountID) (*account.Account, error)
	ListAccounts(ctx context.Context, shopID string, opts account.ListOpts) ([]*account.Account, error)
	UpdateAccount(ctx context.Context, a *account.Account) error
	DeleteAccount(ctx context.Context, accountID id.AccountID) error

	// Journal entry methods
	CreateEntry(ctx context.Context, e *journal.Entry) error
	GetEntry(ctx context.Context, entryID id.EntryID) (*journal.Entry, error)
	ListEntries(ctx context.Context, shopID string, opts journal.ListOpts) ([]*journal.Entry, error)
	UpdateEntry(ctx context.Context, e *journal.Entry) error
	DeleteEntry(ctx context.Context, entryID id.EntryID) error
	CountEntriesForAccount(ctx context.Context, shopID string, accountID id.AccountID) (int64, error)

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
