package report

import (
	"testing"
	"time"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/types"
)

func newAccount(typ account.Type, opening int64) *account.Account {
	return &account.Account{
		ID:             id.NewAccountID(),
		ShopID:         "shop_1",
		Name:           string(typ),
		Type:           typ,
		OpeningBalance: types.New(opening, "usd"),
	}
}

func newEntry(debit, credit id.AccountID, amount int64, cat journal.Category, method string) *journal.Entry {
	return &journal.Entry{
		ID:              id.NewEntryID(),
		ShopID:          "shop_1",
		Date:            time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          types.New(amount, "usd"),
		Category:        cat,
		PaymentMethod:   method,
	}
}

func TestAccountingEmptyLedger(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rep := Accounting(nil, nil, start, end, "usd")
	if rep == nil {
		t.Fatal("report must never be nil")
	}
	if rep.TotalEntries != 0 {
		t.Fatalf("TotalEntries = %d, want 0", rep.TotalEntries)
	}
	for _, typ := range account.Types() {
		total, ok := rep.TotalsByType[typ]
		if !ok {
			t.Fatalf("missing total for %s", typ)
		}
		if !total.IsZero() {
			t.Fatalf("%s total = %v, want zero", typ, total)
		}
	}
	if !rep.NetIncome.IsZero() || !rep.TotalEquity.IsZero() {
		t.Fatalf("net income %v, equity %v, want both zero", rep.NetIncome, rep.TotalEquity)
	}
}

func TestAccountingNetIncomeAndEquity(t *testing.T) {
	cash := newAccount(account.TypeAsset, 100000)
	sales := newAccount(account.TypeIncome, 0)
	rent := newAccount(account.TypeExpense, 0)
	payable := newAccount(account.TypeLiability, 20000)
	accounts := []*account.Account{cash, sales, rent, payable}

	// Sell 50000 for cash, pay 20000 rent from cash.
	entries := []*journal.Entry{
		newEntry(cash.ID, sales.ID, 50000, journal.CategorySale, "cash"),
		newEntry(rent.ID, cash.ID, 20000, journal.CategoryGeneral, ""),
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rep := Accounting(accounts, entries, start, start.AddDate(0, 1, 0), "usd")

	// Type totals stay raw: income accumulates credits, so it runs negative.
	if got := rep.TotalsByType[account.TypeIncome]; got.Amount != -50000 {
		t.Fatalf("income total = %d, want -50000", got.Amount)
	}
	if got := rep.TotalsByType[account.TypeExpense]; got.Amount != 20000 {
		t.Fatalf("expense total = %d, want 20000", got.Amount)
	}
	if got := rep.TotalsByType[account.TypeLiability]; got.Amount != 20000 {
		t.Fatalf("liability total = %d, want 20000", got.Amount)
	}
	if rep.NetIncome.Amount != 30000 {
		t.Fatalf("net income = %d, want 30000", rep.NetIncome.Amount)
	}
	// Cash: 100000 + 50000 - 20000 = 130000.
	if got := rep.TotalsByType[account.TypeAsset]; got.Amount != 130000 {
		t.Fatalf("asset total = %d, want 130000", got.Amount)
	}
	// 130000 assets against 20000 owed.
	if rep.TotalEquity.Amount != 110000 {
		t.Fatalf("equity = %d, want 110000", rep.TotalEquity.Amount)
	}
	if rep.TotalEntries != 2 {
		t.Fatalf("TotalEntries = %d, want 2", rep.TotalEntries)
	}
}

func TestAccountingPaymentMethods(t *testing.T) {
	cash := newAccount(account.TypeAsset, 0)
	sales := newAccount(account.TypeIncome, 0)
	accounts := []*account.Account{cash, sales}

	entries := []*journal.Entry{
		newEntry(cash.ID, sales.ID, 100, journal.CategorySale, "cash"),
		newEntry(cash.ID, sales.ID, 200, journal.CategorySale, "cash"),
		newEntry(cash.ID, sales.ID, 300, journal.CategorySale, "card"),
		newEntry(cash.ID, sales.ID, 400, journal.CategoryGeneral, ""),
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rep := Accounting(accounts, entries, start, start.AddDate(0, 1, 0), "usd")

	want := map[string]MethodSummary{
		"cash":        {Count: 2, Total: types.USD(300)},
		"card":        {Count: 1, Total: types.USD(300)},
		"unspecified": {Count: 1, Total: types.USD(400)},
	}
	if len(rep.PaymentMethods) != len(want) {
		t.Fatalf("got %d methods, want %d", len(rep.PaymentMethods), len(want))
	}
	for method, w := range want {
		got, ok := rep.PaymentMethods[method]
		if !ok {
			t.Fatalf("missing method %q", method)
		}
		if got.Count != w.Count || !got.Total.Equal(w.Total) {
			t.Fatalf("%s: got %+v, want %+v", method, got, w)
		}
	}
}

func TestClosingBuckets(t *testing.T) {
	cash := newAccount(account.TypeAsset, 0)
	sales := newAccount(account.TypeIncome, 0)

	entries := []*journal.Entry{
		newEntry(cash.ID, sales.ID, 1000, journal.CategorySale, "cash"),
		newEntry(cash.ID, sales.ID, 2000, journal.CategorySale, "card"),
		newEntry(sales.ID, cash.ID, 500, journal.CategoryRefund, "cash"),
		newEntry(sales.ID, cash.ID, 100, journal.CategoryVoid, ""),
		newEntry(sales.ID, cash.ID, 150, journal.CategoryDiscount, ""),
		newEntry(cash.ID, sales.ID, 9999, journal.CategoryGeneral, ""),
	}

	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	c := Closing(entries, day, "usd")

	if c.SalesTotal.Amount != 3000 {
		t.Fatalf("sales = %d, want 3000", c.SalesTotal.Amount)
	}
	if c.RefundsTotal.Amount != 500 {
		t.Fatalf("refunds = %d, want 500", c.RefundsTotal.Amount)
	}
	if c.VoidsTotal.Amount != 100 {
		t.Fatalf("voids = %d, want 100", c.VoidsTotal.Amount)
	}
	if c.DiscountsTotal.Amount != 150 {
		t.Fatalf("discounts = %d, want 150", c.DiscountsTotal.Amount)
	}
	if c.NetSales.Amount != 3000-500-100-150 {
		t.Fatalf("net sales = %d, want 2250", c.NetSales.Amount)
	}
	if c.TotalEntries != 6 {
		t.Fatalf("TotalEntries = %d, want 6", c.TotalEntries)
	}
}

func TestClosingEmptyDay(t *testing.T) {
	day := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	c := Closing(nil, day, "usd")
	if c == nil {
		t.Fatal("closing must never be nil")
	}
	if !c.SalesTotal.IsZero() || !c.NetSales.IsZero() || c.TotalEntries != 0 {
		t.Fatalf("empty day not zeroed: %+v", c)
	}
}
