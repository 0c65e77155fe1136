package shopbook_test

import (
	"context"
	"log"
	"log/slog"
	"testing"
	"time"

	"github.com/xraph/shopbook"
	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/store/memory"
	"github.com/xraph/shopbook/types"
)

// TestDocumentationExamples verifies that all examples in the documentation compile
func TestDocumentationExamples(t *testing.T) {
	// Test Quick Start example from README
	t.Run("QuickStartExample", func(t *testing.T) {
		// Create store (memory for demo, use PostgreSQL or MongoDB in production)
		store := memory.New()

		// Initialize the engine
		eng := shopbook.New(store,
			shopbook.WithLogger(slog.Default()),
			shopbook.WithDefaultCurrency("usd"),
		)

		// Start the engine
		ctx := context.Background()
		if err := eng.Start(ctx); err != nil {
			t.Fatal(err)
		}
		defer eng.Stop()

		// Bootstrap the default chart of accounts for a new shop
		chart, err := eng.InitializeDefaultAccounts(ctx, "shop_1")
		if err != nil {
			t.Fatal(err)
		}

		// Or create accounts one by one
		card := &account.Account{
			ShopID:         "shop_1",
			Name:           "Card Clearing",
			Type:           account.TypeAsset,
			OpeningBalance: shopbook.USD(0),
		}
		if err := eng.CreateAccount(ctx, card); err != nil {
			t.Fatal(err)
		}

		var cash, sales *account.Account
		for _, a := range chart {
			switch a.Name {
			case "Cash":
				cash = a
			case "Sales":
				sales = a
			}
		}

		// Post a journal entry: debit cash, credit sales
		if err := eng.PostEntry(ctx, &journal.Entry{
			ShopID:          "shop_1",
			Date:            time.Now(),
			Description:     "Cash sale",
			DebitAccountID:  cash.ID,
			CreditAccountID: sales.ID,
			Amount:          shopbook.USD(50000), // $500.00
			Category:        journal.CategorySale,
			PaymentMethod:   "cash",
		}); err != nil {
			t.Fatal(err)
		}

		// Balances are derived, never stored
		bal, err := eng.AccountBalance(ctx, "shop_1", cash.ID)
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Cash balance: %s\n", bal.String())

		// Daily closing for the till
		closing, err := eng.DailyClosing(ctx, "shop_1", time.Now())
		if err != nil {
			t.Fatal(err)
		}
		log.Printf("Net sales today: %s\n", closing.NetSales.String())
	})

	// Test Money type examples
	t.Run("MoneyExamples", func(t *testing.T) {
		// Constructors
		_ = types.USD(4900)   // $49.00
		_ = types.EUR(9900)   // €99.00
		_ = types.Zero("usd") // $0.00

		// Arithmetic
		m1 := types.USD(100)
		m2 := types.USD(200)
		_ = m1.Add(m2)      // $3.00
		_ = m2.Subtract(m1) // $1.00

		// Comparison
		if m1.LessThan(m2) {
			// m1 is less than m2
		}

		// Formatting
		_ = m1.String()      // "$1.00"
		_ = m1.FormatMajor() // "1.00"
	})
}
