package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the shopbook store (SQLite).
var Migrations = migrate.NewGroup("shopbook")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_shopbook_accounts",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shopbook_accounts (
    id               TEXT PRIMARY KEY,
    shop_id          TEXT NOT NULL DEFAULT '',
    name             TEXT NOT NULL DEFAULT '',
    type             TEXT NOT NULL DEFAULT '',
    opening_cents    INTEGER NOT NULL DEFAULT 0,
    opening_currency TEXT NOT NULL DEFAULT '',
    description      TEXT NOT NULL DEFAULT '',
    created_at       TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at       TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_shopbook_accounts_shop_name ON shopbook_accounts (shop_id, name);
CREATE INDEX IF NOT EXISTS idx_shopbook_accounts_shop_type ON shopbook_accounts (shop_id, type);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shopbook_accounts`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_shopbook_entries",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS shopbook_entries (
    id                TEXT PRIMARY KEY,
    shop_id           TEXT NOT NULL DEFAULT '',
    date              TEXT NOT NULL DEFAULT (datetime('now')),
    description       TEXT NOT NULL DEFAULT '',
    debit_account_id  TEXT NOT NULL DEFAULT '',
    credit_account_id TEXT NOT NULL DEFAULT '',
    amount_cents      INTEGER NOT NULL DEFAULT 0,
    amount_currency   TEXT NOT NULL DEFAULT '',
    reference         TEXT NOT NULL DEFAULT '',
    category          TEXT NOT NULL DEFAULT 'general',
    payment_method    TEXT NOT NULL DEFAULT '',
    created_at        TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at        TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_shopbook_entries_shop_date ON shopbook_entries (shop_id, date);
CREATE INDEX IF NOT EXISTS idx_shopbook_entries_debit ON shopbook_entries (shop_id, debit_account_id);
CREATE INDEX IF NOT EXISTS idx_shopbook_entries_credit ON shopbook_entries (shop_id, credit_account_id);
CREATE INDEX IF NOT EXISTS idx_shopbook_entries_category ON shopbook_entries (shop_id, category, date);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS shopbook_entries`)
				return err
			},
		},
	)
}
