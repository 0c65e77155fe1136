package account

import (
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/types"
)

// Type classifies an account for reporting purposes. The set is closed:
// the balance formula itself is type-agnostic, types only drive how report
// totals are bucketed and combined.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeIncome    Type = "income"
	TypeExpense   Type = "expense"
)

// Types lists all valid account types in reporting order.
func Types() []Type {
	return []Type{TypeAsset, TypeLiability, TypeIncome, TypeExpense}
}

// Valid reports whether t is one of the four known account types.
func (t Type) Valid() bool {
	switch t {
	case TypeAsset, TypeLiability, TypeIncome, TypeExpense:
		return true
	}
	return false
}

// Account is a named bucket in a shop's chart of accounts. Its balance is
// never stored: it is derived from OpeningBalance plus every journal entry
// that debits or credits it.
type Account struct {
	types.Entity
	ID             id.AccountID `json:"id"`
	ShopID         string       `json:"shop_id"`
	Name           string       `json:"name"`
	Type           Type         `json:"type"`
	OpeningBalance types.Money  `json:"opening_balance"`
	Description    string       `json:"description,omitempty"`
}
