package balance

import (
	"testing"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/types"
)

func newAccount(t *testing.T, typ account.Type, opening int64) *account.Account {
	t.Helper()
	return &account.Account{
		ID:             id.NewAccountID(),
		ShopID:         "shop_1",
		Name:           string(typ),
		Type:           typ,
		OpeningBalance: types.New(opening, "usd"),
	}
}

func newEntry(debit, credit id.AccountID, amount int64) *journal.Entry {
	return &journal.Entry{
		ID:              id.NewEntryID(),
		ShopID:          "shop_1",
		DebitAccountID:  debit,
		CreditAccountID: credit,
		Amount:          types.New(amount, "usd"),
	}
}

func TestForAccountFormulaUniformAcrossTypes(t *testing.T) {
	// The formula is opening + debits - credits for every account type;
	// only reporting re-signs.
	for _, typ := range account.Types() {
		t.Run(string(typ), func(t *testing.T) {
			acct := newAccount(t, typ, 1000)
			other := newAccount(t, account.TypeAsset, 0)
			entries := []*journal.Entry{
				newEntry(acct.ID, other.ID, 500),
				newEntry(other.ID, acct.ID, 200),
			}
			got := ForAccount(acct, entries)
			if got.Amount != 1300 {
				t.Fatalf("balance for %s = %d, want 1300", typ, got.Amount)
			}
		})
	}
}

func TestForAccountIgnoresUnrelatedEntries(t *testing.T) {
	acct := newAccount(t, account.TypeAsset, 250)
	a := newAccount(t, account.TypeIncome, 0)
	b := newAccount(t, account.TypeExpense, 0)
	entries := []*journal.Entry{newEntry(a.ID, b.ID, 9999)}

	got := ForAccount(acct, entries)
	if got.Amount != 250 {
		t.Fatalf("balance = %d, want opening 250", got.Amount)
	}
}

func TestForAccountOrderIndependent(t *testing.T) {
	acct := newAccount(t, account.TypeAsset, 0)
	other := newAccount(t, account.TypeIncome, 0)
	entries := []*journal.Entry{
		newEntry(acct.ID, other.ID, 100),
		newEntry(other.ID, acct.ID, 40),
		newEntry(acct.ID, other.ID, 7),
	}
	reversed := []*journal.Entry{entries[2], entries[1], entries[0]}

	if a, b := ForAccount(acct, entries), ForAccount(acct, reversed); !a.Equal(b) {
		t.Fatalf("order changed result: %v vs %v", a, b)
	}
}

func TestAllMatchesPerAccount(t *testing.T) {
	cash := newAccount(t, account.TypeAsset, 100000)
	sales := newAccount(t, account.TypeIncome, 0)
	rent := newAccount(t, account.TypeExpense, 0)
	payable := newAccount(t, account.TypeLiability, 5000)
	accounts := []*account.Account{cash, sales, rent, payable}

	entries := []*journal.Entry{
		newEntry(cash.ID, sales.ID, 50000),
		newEntry(rent.ID, cash.ID, 20000),
		newEntry(cash.ID, sales.ID, 1),
		newEntry(payable.ID, cash.ID, 2500),
	}

	all := All(accounts, entries)
	if len(all) != len(accounts) {
		t.Fatalf("got %d balances, want %d", len(all), len(accounts))
	}
	for _, a := range accounts {
		want := ForAccount(a, entries)
		got, ok := all[a.ID.String()]
		if !ok {
			t.Fatalf("missing balance for %s", a.Name)
		}
		if !got.Equal(want) {
			t.Fatalf("%s: batch %v != per-account %v", a.Name, got, want)
		}
	}
}

func TestAllSkipsUnknownAccountSides(t *testing.T) {
	cash := newAccount(t, account.TypeAsset, 0)
	ghost := newAccount(t, account.TypeIncome, 0) // not in the input set

	all := All([]*account.Account{cash}, []*journal.Entry{
		newEntry(cash.ID, ghost.ID, 300),
	})
	if got := all[cash.ID.String()]; got.Amount != 300 {
		t.Fatalf("cash = %d, want 300", got.Amount)
	}
	if _, ok := all[ghost.ID.String()]; ok {
		t.Fatal("unknown account must not appear in the result")
	}
}

func TestAllEmptyInputs(t *testing.T) {
	if got := All(nil, nil); len(got) != 0 {
		t.Fatalf("got %d balances for empty ledger", len(got))
	}

	acct := newAccount(t, account.TypeAsset, 42)
	all := All([]*account.Account{acct}, nil)
	if got := all[acct.ID.String()]; got.Amount != 42 {
		t.Fatalf("no-entry balance = %d, want opening 42", got.Amount)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("shop_1", "acct_1"); ok {
		t.Fatal("empty cache returned a hit")
	}

	c.Put("shop_1", "acct_1", types.New(10, "usd"))
	if bal, ok := c.Get("shop_1", "acct_1"); !ok || bal.Amount != 10 {
		t.Fatalf("got (%v, %v), want (10, true)", bal, ok)
	}

	c.PutAll("shop_2", map[string]types.Money{"acct_2": types.New(5, "usd")})
	c.InvalidateShop("shop_1")
	if _, ok := c.Get("shop_1", "acct_1"); ok {
		t.Fatal("invalidated shop still cached")
	}
	if _, ok := c.Get("shop_2", "acct_2"); !ok {
		t.Fatal("unrelated shop was invalidated")
	}

	c.Reset()
	if _, ok := c.Get("shop_2", "acct_2"); ok {
		t.Fatal("reset cache returned a hit")
	}
}
