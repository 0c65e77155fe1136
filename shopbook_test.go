package shopbook_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	shopbook "github.com/xraph/shopbook"
	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/store/memory"
	"github.com/xraph/shopbook/types"
)

func newTestEngine(t *testing.T, opts ...shopbook.Option) *shopbook.Engine {
	t.Helper()

	e := shopbook.New(memory.New(), opts...)
	if err := e.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = e.Stop()
	})
	return e
}

func mustCreateAccount(t *testing.T, e *shopbook.Engine, shopID, name string, typ account.Type, opening types.Money) *account.Account {
	t.Helper()

	a := &account.Account{
		ShopID:         shopID,
		Name:           name,
		Type:           typ,
		OpeningBalance: opening,
	}
	if err := e.CreateAccount(context.Background(), a); err != nil {
		t.Fatalf("create account %q: %v", name, err)
	}
	return a
}

func mustPostEntry(t *testing.T, e *shopbook.Engine, entry *journal.Entry) *journal.Entry {
	t.Helper()

	if err := e.PostEntry(context.Background(), entry); err != nil {
		t.Fatalf("post entry %q: %v", entry.Description, err)
	}
	return entry
}

func TestCreateAndGetAccount(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	a := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(100000))

	if a.ID.IsNil() {
		t.Fatal("expected generated account ID")
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Fatal("expected entity timestamps to be set")
	}

	got, err := e.GetAccount(ctx, "shop_1", a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Cash" || got.Type != account.TypeAsset {
		t.Fatalf("unexpected account: %+v", got)
	}
	if !got.OpeningBalance.Equal(types.USD(100000)) {
		t.Fatalf("unexpected opening balance: %s", got.OpeningBalance)
	}
}

func TestCreateAccountDefaultsCurrency(t *testing.T) {
	e := newTestEngine(t, shopbook.WithDefaultCurrency("eur"))

	a := mustCreateAccount(t, e, "shop_1", "Till", account.TypeAsset, types.Money{})
	if a.OpeningBalance.Currency != "eur" {
		t.Fatalf("expected eur opening balance, got %q", a.OpeningBalance.Currency)
	}
}

func TestCreateAccountValidation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tests := []struct {
		name string
		acct *account.Account
		want error
	}{
		{"missing shop", &account.Account{Name: "Cash", Type: account.TypeAsset}, shopbook.ErrInvalidInput},
		{"missing name", &account.Account{ShopID: "shop_1", Type: account.TypeAsset}, shopbook.ErrInvalidInput},
		{"blank name", &account.Account{ShopID: "shop_1", Name: "   ", Type: account.TypeAsset}, shopbook.ErrInvalidInput},
		{"bad type", &account.Account{ShopID: "shop_1", Name: "Cash", Type: "savings"}, shopbook.ErrInvalidAccountType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.CreateAccount(ctx, tt.acct); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestUpdateAccountTypeImmutable(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	a := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))

	changed := *a
	changed.Type = account.TypeExpense
	if err := e.UpdateAccount(ctx, "shop_1", &changed); err == nil {
		t.Fatal("expected type change to be rejected")
	}

	renamed := *a
	renamed.Name = "Cash Register"
	if err := e.UpdateAccount(ctx, "shop_1", &renamed); err != nil {
		t.Fatal(err)
	}

	got, err := e.GetAccount(ctx, "shop_1", a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Cash Register" {
		t.Fatalf("rename not persisted: %q", got.Name)
	}
	if !got.CreatedAt.Equal(a.CreatedAt) {
		t.Fatal("CreatedAt must survive updates")
	}
}

func TestDeleteAccountReferentialGuard(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	entry := mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Morning sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(500),
	})

	if err := e.DeleteAccount(ctx, "shop_1", cash.ID); !errors.Is(err, shopbook.ErrAccountInUse) {
		t.Fatalf("expected ErrAccountInUse, got %v", err)
	}
	if err := e.DeleteAccount(ctx, "shop_1", sales.ID); !errors.Is(err, shopbook.ErrAccountInUse) {
		t.Fatalf("expected ErrAccountInUse for credit side, got %v", err)
	}

	if err := e.DeleteEntry(ctx, "shop_1", entry.ID); err != nil {
		t.Fatal(err)
	}
	if err := e.DeleteAccount(ctx, "shop_1", cash.ID); err != nil {
		t.Fatalf("delete after entry removal: %v", err)
	}
	if _, err := e.GetAccount(ctx, "shop_1", cash.ID); !errors.Is(err, shopbook.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestInitializeDefaultAccountsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	chart, err := e.InitializeDefaultAccounts(ctx, "shop_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(chart) == 0 {
		t.Fatal("expected a non-empty default chart")
	}

	seen := make(map[account.Type]bool)
	for _, a := range chart {
		seen[a.Type] = true
		if !a.OpeningBalance.IsZero() {
			t.Fatalf("default account %q has non-zero opening balance", a.Name)
		}
	}
	for _, typ := range account.Types() {
		if !seen[typ] {
			t.Fatalf("default chart missing %s account", typ)
		}
	}

	again, err := e.InitializeDefaultAccounts(ctx, "shop_1")
	if err != nil {
		t.Fatal(err)
	}
	if again != nil {
		t.Fatal("second bootstrap must be a no-op")
	}

	accounts, err := e.ListAccounts(ctx, "shop_1", account.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != len(chart) {
		t.Fatalf("expected %d accounts after repeat bootstrap, got %d", len(chart), len(accounts))
	}
}

func TestPostEntryValidation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))
	foreign := mustCreateAccount(t, e, "shop_2", "Cash", account.TypeAsset, types.USD(0))

	base := func() *journal.Entry {
		return &journal.Entry{
			ShopID:          "shop_1",
			Date:            time.Now(),
			Description:     "Sale",
			DebitAccountID:  cash.ID,
			CreditAccountID: sales.ID,
			Amount:          types.USD(100),
		}
	}

	t.Run("same account both sides", func(t *testing.T) {
		entry := base()
		entry.CreditAccountID = cash.ID
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrSameAccount) {
			t.Fatalf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		entry := base()
		entry.Amount = types.USD(0)
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		entry := base()
		entry.Amount = types.USD(-100)
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("one cent is valid", func(t *testing.T) {
		entry := base()
		entry.Amount = types.USD(1)
		if err := e.PostEntry(ctx, entry); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("zero date", func(t *testing.T) {
		entry := base()
		entry.Date = time.Time{}
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		entry := base()
		entry.DebitAccountID = id.NewAccountID()
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("foreign shop account", func(t *testing.T) {
		entry := base()
		entry.DebitAccountID = foreign.ID
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrShopMismatch) {
			t.Fatalf("expected ErrShopMismatch, got %v", err)
		}
	})

	t.Run("bad category", func(t *testing.T) {
		entry := base()
		entry.Category = "gift"
		if err := e.PostEntry(ctx, entry); !errors.Is(err, shopbook.ErrInvalidCategory) {
			t.Fatalf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("cross-currency amount", func(t *testing.T) {
		entry := base()
		entry.Amount = types.EUR(500)
		if err := e.PostEntry(ctx, entry); err == nil {
			t.Fatal("expected cross-currency entry to be rejected")
		} else if !shopbook.IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}

		// Rejection must leave balances readable.
		bal, err := e.AccountBalance(ctx, "shop_1", cash.ID)
		if err != nil {
			t.Fatal(err)
		}
		if bal.Currency != "usd" {
			t.Fatalf("balance currency = %q", bal.Currency)
		}
		if _, err := e.AllBalances(ctx, "shop_1"); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("empty currency takes engine default", func(t *testing.T) {
		entry := base()
		entry.Amount = types.Money{Amount: 300}
		mustPostEntry(t, e, entry)

		got, err := e.GetEntry(ctx, "shop_1", entry.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Amount.Currency != "usd" {
			t.Fatalf("amount currency = %q, want usd", got.Amount.Currency)
		}
		if _, err := e.AccountBalance(ctx, "shop_1", cash.ID); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("category defaults to general", func(t *testing.T) {
		entry := mustPostEntry(t, e, base())
		got, err := e.GetEntry(ctx, "shop_1", entry.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Category != journal.CategoryGeneral {
			t.Fatalf("expected general category, got %q", got.Category)
		}
	})
}

func TestBalances(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(100000))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))
	rent := mustCreateAccount(t, e, "shop_1", "Rent", account.TypeExpense, types.USD(0))

	mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Counter sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(50000),
		Category:        journal.CategorySale,
	})
	mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Monthly rent",
		DebitAccountID:  rent.ID,
		CreditAccountID: cash.ID,
		Amount:          types.USD(20000),
	})

	// opening + debits - credits, uniformly for every type
	wantCash := types.USD(100000 + 50000 - 20000)
	wantSales := types.USD(-50000)
	wantRent := types.USD(20000)

	for _, tt := range []struct {
		name string
		id   id.AccountID
		want types.Money
	}{
		{"cash", cash.ID, wantCash},
		{"sales", sales.ID, wantSales},
		{"rent", rent.ID, wantRent},
	} {
		bal, err := e.AccountBalance(ctx, "shop_1", tt.id)
		if err != nil {
			t.Fatal(err)
		}
		if !bal.Equal(tt.want) {
			t.Fatalf("%s balance = %s, want %s", tt.name, bal, tt.want)
		}
	}

	all, err := e.AllBalances(ctx, "shop_1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(all))
	}
	for _, a := range []*account.Account{cash, sales, rent} {
		per, err := e.AccountBalance(ctx, "shop_1", a.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !all[a.ID.String()].Equal(per) {
			t.Fatalf("batch balance for %s disagrees with per-account: %s vs %s",
				a.Name, all[a.ID.String()], per)
		}
	}
}

func TestBalanceReflectsEntryDeletion(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(1000))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	entry := mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(500),
	})

	bal, err := e.AccountBalance(ctx, "shop_1", cash.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(types.USD(1500)) {
		t.Fatalf("balance before delete = %s", bal)
	}

	if err := e.DeleteEntry(ctx, "shop_1", entry.ID); err != nil {
		t.Fatal(err)
	}

	bal, err = e.AccountBalance(ctx, "shop_1", cash.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(types.USD(1000)) {
		t.Fatalf("balance after delete = %s, want opening balance", bal)
	}
}

func TestTenantIsolation(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	a := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	b := mustCreateAccount(t, e, "shop_2", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	entry := mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Sale",
		DebitAccountID:  a.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(100),
	})

	if _, err := e.GetAccount(ctx, "shop_2", a.ID); !errors.Is(err, shopbook.ErrShopMismatch) {
		t.Fatalf("expected ErrShopMismatch, got %v", err)
	}
	if _, err := e.GetEntry(ctx, "shop_2", entry.ID); !errors.Is(err, shopbook.ErrShopMismatch) {
		t.Fatalf("expected ErrShopMismatch, got %v", err)
	}
	if err := e.DeleteAccount(ctx, "shop_1", b.ID); !errors.Is(err, shopbook.ErrShopMismatch) {
		t.Fatalf("expected ErrShopMismatch on cross-shop delete, got %v", err)
	}

	accounts, err := e.ListAccounts(ctx, "shop_2", account.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || accounts[0].ID.String() != b.ID.String() {
		t.Fatalf("shop_2 must only see its own accounts, got %d", len(accounts))
	}

	entries, err := e.ListEntries(ctx, "shop_2", journal.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("shop_2 must not see shop_1 entries, got %d", len(entries))
	}
}

func TestAccountingReport(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(100000))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))
	rent := mustCreateAccount(t, e, "shop_1", "Rent", account.TypeExpense, types.USD(0))

	mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            day,
		Description:     "Counter sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(50000),
		Category:        journal.CategorySale,
		PaymentMethod:   "cash",
	})
	mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            day,
		Description:     "Monthly rent",
		DebitAccountID:  rent.ID,
		CreditAccountID: cash.ID,
		Amount:          types.USD(20000),
	})

	start := day.AddDate(0, 0, -1)
	end := day.AddDate(0, 0, 1)

	rep, err := e.AccountingReport(ctx, "shop_1", start, end)
	if err != nil {
		t.Fatal(err)
	}

	if got := rep.TotalsByType[account.TypeIncome]; !got.Equal(types.USD(-50000)) {
		t.Fatalf("income total = %s", got)
	}
	if got := rep.TotalsByType[account.TypeExpense]; !got.Equal(types.USD(20000)) {
		t.Fatalf("expense total = %s", got)
	}
	if !rep.NetIncome.Equal(types.USD(30000)) {
		t.Fatalf("net income = %s", rep.NetIncome)
	}
	if rep.TotalEntries != 2 {
		t.Fatalf("total entries = %d", rep.TotalEntries)
	}
	if got := rep.PaymentMethods["cash"]; got.Count != 1 || !got.Total.Equal(types.USD(50000)) {
		t.Fatalf("cash payment summary = %+v", got)
	}

	if _, err := e.AccountingReport(ctx, "shop_1", time.Time{}, end); !errors.Is(err, shopbook.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := e.AccountingReport(ctx, "shop_1", end, start); err == nil {
		t.Fatal("expected inverted range to be rejected")
	}
}

func TestDailyClosing(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	post := func(hour int, amount int64, cat journal.Category) {
		mustPostEntry(t, e, &journal.Entry{
			ShopID:          "shop_1",
			Date:            day.Add(time.Duration(hour) * time.Hour),
			Description:     "Till movement",
			DebitAccountID:  cash.ID,
			CreditAccountID: sales.ID,
			Amount:          types.USD(amount),
			Category:        cat,
		})
	}

	post(9, 3000, journal.CategorySale)
	post(11, 2000, journal.CategorySale)
	post(14, 500, journal.CategoryRefund)
	post(16, 100, journal.CategoryVoid)
	post(17, 150, journal.CategoryDiscount)

	// Next-day entry must not leak into the closing.
	post(9+24, 9999, journal.CategorySale)

	closing, err := e.DailyClosing(ctx, "shop_1", day.Add(13*time.Hour))
	if err != nil {
		t.Fatal(err)
	}

	if !closing.SalesTotal.Equal(types.USD(5000)) {
		t.Fatalf("sales total = %s", closing.SalesTotal)
	}
	if !closing.RefundsTotal.Equal(types.USD(500)) {
		t.Fatalf("refunds total = %s", closing.RefundsTotal)
	}
	if !closing.VoidsTotal.Equal(types.USD(100)) {
		t.Fatalf("voids total = %s", closing.VoidsTotal)
	}
	if !closing.DiscountsTotal.Equal(types.USD(150)) {
		t.Fatalf("discounts total = %s", closing.DiscountsTotal)
	}
	if !closing.NetSales.Equal(types.USD(5000 - 500 - 100 - 150)) {
		t.Fatalf("net sales = %s", closing.NetSales)
	}
	if closing.TotalEntries != 5 {
		t.Fatalf("total entries = %d", closing.TotalEntries)
	}
}

// recordingPlugin captures hook invocations for assertions.
type recordingPlugin struct {
	mu     sync.Mutex
	events []string
	reject bool
}

func (p *recordingPlugin) Name() string { return "recording" }

func (p *recordingPlugin) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPlugin) has(event string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ev := range p.events {
		if ev == event {
			return true
		}
	}
	return false
}

func (p *recordingPlugin) OnAccountCreated(_ context.Context, _ interface{}) error {
	p.record("account.created")
	return nil
}

func (p *recordingPlugin) OnEntryPosted(_ context.Context, _ interface{}) error {
	p.record("entry.posted")
	return nil
}

func (p *recordingPlugin) OnBalancesComputed(_ context.Context, _ string, _ int) error {
	p.record("balances.computed")
	return nil
}

func (p *recordingPlugin) ValidateEntry(_ context.Context, _ interface{}) error {
	if p.reject {
		return errors.New("entry rejected by policy")
	}
	return nil
}

func TestPluginHooks(t *testing.T) {
	rec := &recordingPlugin{}
	e := newTestEngine(t, shopbook.WithPlugin(rec))
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	if !rec.has("account.created") {
		t.Fatal("expected account.created hook")
	}

	mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(100),
	})
	if !rec.has("entry.posted") {
		t.Fatal("expected entry.posted hook")
	}

	if _, err := e.AllBalances(ctx, "shop_1"); err != nil {
		t.Fatal(err)
	}
	if !rec.has("balances.computed") {
		t.Fatal("expected balances.computed hook")
	}

	// A validator rejection blocks the posting entirely.
	rec.reject = true
	err := e.PostEntry(ctx, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Blocked sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(100),
	})
	if err == nil {
		t.Fatal("expected validator to reject entry")
	}

	entries, err := e.ListEntries(ctx, "shop_1", journal.ListOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("rejected entry must not be stored, have %d entries", len(entries))
	}
}

func TestUpdateEntryRevalidates(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	cash := mustCreateAccount(t, e, "shop_1", "Cash", account.TypeAsset, types.USD(0))
	sales := mustCreateAccount(t, e, "shop_1", "Sales", account.TypeIncome, types.USD(0))

	entry := mustPostEntry(t, e, &journal.Entry{
		ShopID:          "shop_1",
		Date:            time.Now(),
		Description:     "Sale",
		DebitAccountID:  cash.ID,
		CreditAccountID: sales.ID,
		Amount:          types.USD(100),
	})

	bad := *entry
	bad.Amount = types.USD(-100)
	if err := e.UpdateEntry(ctx, "shop_1", &bad); !errors.Is(err, shopbook.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	mixed := *entry
	mixed.Amount = types.EUR(100)
	if err := e.UpdateEntry(ctx, "shop_1", &mixed); !shopbook.IsValidation(err) {
		t.Fatalf("expected validation error for cross-currency update, got %v", err)
	}

	fixed := *entry
	fixed.Amount = types.USD(250)
	fixed.Description = "Corrected sale"
	if err := e.UpdateEntry(ctx, "shop_1", &fixed); err != nil {
		t.Fatal(err)
	}

	got, err := e.GetEntry(ctx, "shop_1", entry.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Amount.Equal(types.USD(250)) || got.Description != "Corrected sale" {
		t.Fatalf("update not persisted: %+v", got)
	}

	bal, err := e.AccountBalance(ctx, "shop_1", cash.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !bal.Equal(types.USD(250)) {
		t.Fatalf("balance after update = %s", bal)
	}
}
