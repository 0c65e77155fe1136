package account

import (
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/types"
)

// DefaultChart returns the starter chart of accounts for a new shop: at
// least one account of every type, all with zero opening balances. The
// engine seeds this exactly once, when a shop has no accounts yet, so that
// balance and report computations never run over an empty chart.
func DefaultChart(shopID, currency string) []*Account {
	zero := types.Zero(currency)

	defs := []struct {
		name        string
		typ         Type
		description string
	}{
		{"Cash", TypeAsset, "Cash on hand and in the till"},
		{"Inventory", TypeAsset, "Stock held for sale"},
		{"Accounts Payable", TypeLiability, "Amounts owed to suppliers"},
		{"Sales", TypeIncome, "Revenue from sales"},
		{"Operating Expenses", TypeExpense, "Day-to-day running costs"},
		{"Rent", TypeExpense, "Premises rent"},
	}

	chart := make([]*Account, len(defs))
	for i, d := range defs {
		chart[i] = &Account{
			Entity:         types.NewEntity(),
			ID:             id.NewAccountID(),
			ShopID:         shopID,
			Name:           d.name,
			Type:           d.typ,
			OpeningBalance: zero,
			Description:    d.description,
		}
	}
	return chart
}
