// Package memory provides an in-memory store for tests and development.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/xraph/shopbook"
	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
)

type Store struct {
	mu sync.RWMutex

	// Account storage
	accounts map[string]*account.Account

	// Journal entry storage
	entries map[string]*journal.Entry
}

func New() *Store {
	return &Store{
		accounts: make(map[string]*account.Account),
		entries:  make(map[string]*journal.Entry),
	}
}

// Account Store implementation

func (s *Store) CreateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.ID.String()]; exists {
		return shopbook.ErrAlreadyExists
	}
	s.accounts[a.ID.String()] = a
	return nil
}

func (s *Store) GetAccount(_ context.Context, accountID id.AccountID) (*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.accounts[accountID.String()]; ok {
		return a, nil
	}
	return nil, shopbook.ErrAccountNotFound
}

func (s *Store) ListAccounts(_ context.Context, shopID string, opts account.ListOpts) ([]*account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*account.Account, 0)
	for _, a := range s.accounts {
		if a.ShopID != shopID {
			continue
		}
		if opts.Type != "" && a.Type != opts.Type {
			continue
		}
		result = append(result, a)
	}
	sortAccounts(result)

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateAccount(_ context.Context, a *account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[a.ID.String()]; !exists {
		return shopbook.ErrAccountNotFound
	}
	s.accounts[a.ID.String()] = a
	return nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID id.AccountID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[accountID.String()]; !exists {
		return shopbook.ErrAccountNotFound
	}
	delete(s.accounts, accountID.String())
	return nil
}

// Journal entry Store implementation

func (s *Store) CreateEntry(_ context.Context, e *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID.String()]; exists {
		return shopbook.ErrAlreadyExists
	}
	s.entries[e.ID.String()] = e
	return nil
}

func (s *Store) GetEntry(_ context.Context, entryID id.EntryID) (*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if e, ok := s.entries[entryID.String()]; ok {
		return e, nil
	}
	return nil, shopbook.ErrEntryNotFound
}

func (s *Store) ListEntries(_ context.Context, shopID string, opts journal.ListOpts) ([]*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*journal.Entry, 0)
	for _, e := range s.entries {
		if e.ShopID != shopID {
			continue
		}
		if !opts.Start.IsZero() && e.Date.Before(opts.Start) {
			continue
		}
		if !opts.End.IsZero() && !e.Date.Before(opts.End) {
			continue
		}
		if !opts.AccountID.IsNil() && !e.Touches(opts.AccountID) {
			continue
		}
		if opts.Category != "" && e.Category != opts.Category {
			continue
		}
		result = append(result, e)
	}
	sortEntries(result)

	return paginate(result, opts.Offset, opts.Limit), nil
}

func (s *Store) UpdateEntry(_ context.Context, e *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[e.ID.String()]; !exists {
		return shopbook.ErrEntryNotFound
	}
	s.entries[e.ID.String()] = e
	return nil
}

func (s *Store) DeleteEntry(_ context.Context, entryID id.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entryID.String()]; !exists {
		return shopbook.ErrEntryNotFound
	}
	delete(s.entries, entryID.String())
	return nil
}

func (s *Store) CountEntriesForAccount(_ context.Context, shopID string, accountID id.AccountID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, e := range s.entries {
		if e.ShopID == shopID && e.Touches(accountID) {
			n++
		}
	}
	return n, nil
}

// Core methods

func (s *Store) Migrate(_ context.Context) error {
	return nil // No migration needed for memory store
}

func (s *Store) Ping(_ context.Context) error {
	return nil // Always available
}

func (s *Store) Close() error {
	return nil // Nothing to close
}

// Helper functions

func sortAccounts(accounts []*account.Account) {
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].ID.String() < accounts[j].ID.String()
	})
}

func sortEntries(entries []*journal.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].ID.String() < entries[j].ID.String()
	})
}

func paginate[T any](items []T, offset, limit int) []T {
	start := offset
	if start > len(items) {
		start = len(items)
	}
	end := start + limit
	if limit == 0 || end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
