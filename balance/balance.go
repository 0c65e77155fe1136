// Package balance derives account balances from journal entries.
//
// Balances are never stored. An account's balance is its opening balance
// plus every amount debited to it minus every amount credited from it,
// regardless of account type. The sign convention is raw: income accounts
// normally carry negative derived balances and reporting layers re-sign
// them for presentation.
package balance

import (
	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/types"
)

// ForAccount computes one account's derived balance over the given entries.
// Entries that neither debit nor credit the account are ignored.
func ForAccount(acct *account.Account, entries []*journal.Entry) types.Money {
	bal := acct.OpeningBalance
	aid := acct.ID.String()
	for _, e := range entries {
		if e.DebitAccountID.String() == aid {
			bal = bal.Add(e.Amount)
		}
		if e.CreditAccountID.String() == aid {
			bal = bal.Subtract(e.Amount)
		}
	}
	return bal
}

// All computes derived balances for every account in a single pass over
// the entries: each entry adjusts at most two running totals. The result
// maps account ID to balance and contains one key per input account.
// Entry sides referencing accounts outside the input set are skipped, so
// the batch result agrees with ForAccount for every included account.
func All(accounts []*account.Account, entries []*journal.Entry) map[string]types.Money {
	balances := make(map[string]types.Money, len(accounts))
	for _, a := range accounts {
		balances[a.ID.String()] = a.OpeningBalance
	}
	for _, e := range entries {
		if db, ok := balances[e.DebitAccountID.String()]; ok {
			balances[e.DebitAccountID.String()] = db.Add(e.Amount)
		}
		if cb, ok := balances[e.CreditAccountID.String()]; ok {
			balances[e.CreditAccountID.String()] = cb.Subtract(e.Amount)
		}
	}
	return balances
}
