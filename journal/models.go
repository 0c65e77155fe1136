package journal

import (
	"time"

	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/types"
)

// Category tags an entry for daily-closing bucketing. Most entries are
// general; point-of-sale flows tag their entries so closings can separate
// sales from refunds, voids and discounts.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategorySale     Category = "sale"
	CategoryRefund   Category = "refund"
	CategoryVoid     Category = "void"
	CategoryDiscount Category = "discount"
)

// Valid reports whether c is a known entry category.
func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategorySale, CategoryRefund, CategoryVoid, CategoryDiscount:
		return true
	}
	return false
}

// Entry is a double-sided journal line: it debits one account and credits
// another for a positive amount. Every entry increases the debit account's
// raw balance by Amount and decreases the credit account's by the same,
// so the ledger is globally balanced by construction.
type Entry struct {
	types.Entity
	ID              id.EntryID   `json:"id"`
	ShopID          string       `json:"shop_id"`
	Date            time.Time    `json:"date"` // effective calendar date, not creation time
	Description     string       `json:"description"`
	DebitAccountID  id.AccountID `json:"debit_account_id"`
	CreditAccountID id.AccountID `json:"credit_account_id"`
	Amount          types.Money  `json:"amount"`
	Reference       string       `json:"reference,omitempty"` // invoice/receipt number
	Category        Category     `json:"category"`
	PaymentMethod   string       `json:"payment_method,omitempty"` // free-form: "cash", "card", "mpesa", ...
}

// Touches reports whether the entry debits or credits the given account.
func (e *Entry) Touches(accountID id.AccountID) bool {
	s := accountID.String()
	return e.DebitAccountID.String() == s || e.CreditAccountID.String() == s
}

// InDay reports whether the entry's effective date falls on the given
// calendar day, compared in the day's location.
func (e *Entry) InDay(day time.Time) bool {
	y1, m1, d1 := e.Date.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
