// Package plugin provides an extensible plugin system for shopbook.
// Plugins can hook into various lifecycle events to extend functionality.
package plugin

import (
	"context"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the plugin is initialized.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, engine interface{}) error
}

// OnShutdown is called when the plugin is shutting down.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Account lifecycle hooks
// ──────────────────────────────────────────────────

// OnAccountCreated is called when a new account is created.
type OnAccountCreated interface {
	Plugin
	OnAccountCreated(ctx context.Context, acct interface{}) error
}

// OnAccountUpdated is called when an account is updated.
type OnAccountUpdated interface {
	Plugin
	OnAccountUpdated(ctx context.Context, oldAcct, newAcct interface{}) error
}

// OnAccountDeleted is called when an account is deleted.
type OnAccountDeleted interface {
	Plugin
	OnAccountDeleted(ctx context.Context, accountID string) error
}

// OnChartBootstrapped is called when a default chart of accounts is
// created for a shop.
type OnChartBootstrapped interface {
	Plugin
	OnChartBootstrapped(ctx context.Context, shopID string, accounts []interface{}) error
}

// ──────────────────────────────────────────────────
// Journal entry lifecycle hooks
// ──────────────────────────────────────────────────

// OnEntryPosted is called when a journal entry is posted.
type OnEntryPosted interface {
	Plugin
	OnEntryPosted(ctx context.Context, entry interface{}) error
}

// OnEntryUpdated is called when a journal entry is updated.
type OnEntryUpdated interface {
	Plugin
	OnEntryUpdated(ctx context.Context, oldEntry, newEntry interface{}) error
}

// OnEntryDeleted is called when a journal entry is deleted.
type OnEntryDeleted interface {
	Plugin
	OnEntryDeleted(ctx context.Context, entryID string) error
}

// ──────────────────────────────────────────────────
// Reporting hooks
// ──────────────────────────────────────────────────

// OnBalancesComputed is called after a batch balance computation.
type OnBalancesComputed interface {
	Plugin
	OnBalancesComputed(ctx context.Context, shopID string, count int) error
}

// OnReportGenerated is called when an accounting report or daily
// closing is generated.
type OnReportGenerated interface {
	Plugin
	OnReportGenerated(ctx context.Context, shopID string, report interface{}) error
}

// ──────────────────────────────────────────────────
// Entry validators
// ──────────────────────────────────────────────────

// EntryValidator provides custom validation on top of the structural
// checks. A returned error rejects the posting.
type EntryValidator interface {
	Plugin
	ValidateEntry(ctx context.Context, entry interface{}) error
}
