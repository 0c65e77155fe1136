// Package shopbook provides an embeddable double-entry ledger engine for
// multi-tenant retail back-offices.
//
// Shopbook is designed as a library, not a service. Import it directly into
// your Go application and bring your own transport. It provides:
//
//   - A per-shop chart of accounts (asset, liability, income, expense)
//   - Double-sided journal entries that keep the ledger balanced by construction
//   - Derived balances: opening balance + debits - credits, never stored
//   - Single-pass batch balance computation across a whole shop
//   - Accounting reports and daily closings for point-of-sale flows
//   - A pluggable hook system for audit trails and custom validation
//
// # Quick Start
//
// Create an engine with your preferred store:
//
//	import (
//	    "github.com/xraph/shopbook"
//	    "github.com/xraph/shopbook/store/memory"
//	)
//
//	eng := shopbook.New(memory.New())
//	if err := eng.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Stop()
//
// # Core Concepts
//
// Accounts form a shop's chart. Each account has a fixed type and an
// opening balance:
//
//	cash := &account.Account{
//	    ShopID:         "shop_1",
//	    Name:           "Cash",
//	    Type:           account.TypeAsset,
//	    OpeningBalance: shopbook.USD(100000),
//	}
//	err := eng.CreateAccount(ctx, cash)
//
// Journal entries move value between exactly two accounts:
//
//	err := eng.PostEntry(ctx, &journal.Entry{
//	    ShopID:          "shop_1",
//	    Date:            time.Now(),
//	    Description:     "Cash sale",
//	    DebitAccountID:  cash.ID,
//	    CreditAccountID: sales.ID,
//	    Amount:          shopbook.USD(50000),
//	})
//
// Balances are always derived, never stored:
//
//	bal, err := eng.AccountBalance(ctx, "shop_1", cash.ID)
//
// All monetary calculations use integer arithmetic to avoid floating-point
// precision issues. The Money type represents amounts in the smallest
// currency unit (cents for USD, pence for GBP, etc).
//
// # Sign Convention
//
// Every account type uses the same raw formula, so income accounts carry
// negative derived balances as sales accumulate credits. The report package
// re-signs income and liability for presentation; the ledger itself never
// does.
//
// # TypeID
//
// All entities use TypeID for globally unique, type-safe identifiers:
//
//	acct_01h2xcejqtf2nbrexx3vqjhp41  // Account ID
//	jrn_01h455vb4pex5vsknk084sn02q   // Journal entry ID
//
// TypeIDs are K-sortable, making them ideal for database indexes and
// providing natural time-ordering of entities.
package shopbook
