// Package report builds presentation-level aggregations over a ledger.
//
// The ledger keeps raw balances (opening + debits - credits for every
// account type) and the per-type totals here stay raw too. Only the
// derived fields (NetIncome, TotalEquity) fold in conventional signs,
// so a profitable period reports a positive NetIncome even though the
// raw income total runs negative as sales accumulate credits.
package report

import (
	"time"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/balance"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/types"
)

// AccountingReport summarizes a shop's ledger over a date range.
type AccountingReport struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// TotalsByType sums raw balances per account type, no re-signing:
	// income runs negative as sales accumulate credits. Every account
	// type has a key even when zero.
	TotalsByType map[account.Type]types.Money `json:"totals_by_type"`

	// NetIncome is income minus expenses over the range, positive when
	// the shop is profitable.
	NetIncome types.Money `json:"net_income"`

	// TotalEquity is the raw asset total minus the raw liability total.
	TotalEquity types.Money `json:"total_equity"`

	// PaymentMethods breaks down entries by payment method. Entries
	// without a method are grouped under "unspecified".
	PaymentMethods map[string]MethodSummary `json:"payment_methods"`

	TotalEntries int `json:"total_entries"`
}

// MethodSummary aggregates entries sharing a payment method.
type MethodSummary struct {
	Count int         `json:"count"`
	Total types.Money `json:"total"`
}

// DailyClosing summarizes one calendar day of point-of-sale activity.
type DailyClosing struct {
	Day time.Time `json:"day"`

	SalesTotal     types.Money `json:"sales_total"`
	RefundsTotal   types.Money `json:"refunds_total"`
	VoidsTotal     types.Money `json:"voids_total"`
	DiscountsTotal types.Money `json:"discounts_total"`

	// NetSales is sales minus refunds, voids and discounts.
	NetSales types.Money `json:"net_sales"`

	TotalEntries int `json:"total_entries"`
}

// Accounting builds a report from the given accounts and the entries
// already filtered to the reporting range. Opening balances are included
// in asset and liability totals; income and expense totals reflect only
// the period's entries. A shop with no activity gets a fully zeroed
// report, never nil.
func Accounting(accounts []*account.Account, entries []*journal.Entry, start, end time.Time, currency string) *AccountingReport {
	rep := &AccountingReport{
		Start:          start,
		End:            end,
		TotalsByType:   make(map[account.Type]types.Money, len(account.Types())),
		NetIncome:      types.Zero(currency),
		TotalEquity:    types.Zero(currency),
		PaymentMethods: make(map[string]MethodSummary),
		TotalEntries:   len(entries),
	}
	for _, typ := range account.Types() {
		rep.TotalsByType[typ] = types.Zero(currency)
	}

	balances := balance.All(accounts, entries)
	for _, a := range accounts {
		bal, ok := balances[a.ID.String()]
		if !ok {
			continue
		}
		rep.TotalsByType[a.Type] = add(rep.TotalsByType[a.Type], bal)
	}

	// Raw income is negative when the shop earns, raw expense positive
	// when it spends; negating both yields a positive NetIncome for a
	// profitable period.
	rep.NetIncome = add(rep.TotalsByType[account.TypeIncome].Negate(), rep.TotalsByType[account.TypeExpense].Negate())
	rep.TotalEquity = add(rep.TotalsByType[account.TypeAsset], rep.TotalsByType[account.TypeLiability].Negate())

	for _, e := range entries {
		method := e.PaymentMethod
		if method == "" {
			method = "unspecified"
		}
		sum, ok := rep.PaymentMethods[method]
		if !ok {
			sum = MethodSummary{Total: types.Zero(currency)}
		}
		sum.Count++
		sum.Total = add(sum.Total, e.Amount)
		rep.PaymentMethods[method] = sum
	}
	return rep
}

// Closing builds a daily closing from entries already filtered to one
// calendar day. Bucketing follows the entry category; general entries
// count toward TotalEntries but no bucket. A day with no activity gets
// a fully zeroed closing, never nil.
func Closing(entries []*journal.Entry, day time.Time, currency string) *DailyClosing {
	c := &DailyClosing{
		Day:            day,
		SalesTotal:     types.Zero(currency),
		RefundsTotal:   types.Zero(currency),
		VoidsTotal:     types.Zero(currency),
		DiscountsTotal: types.Zero(currency),
		NetSales:       types.Zero(currency),
		TotalEntries:   len(entries),
	}
	for _, e := range entries {
		switch e.Category {
		case journal.CategorySale:
			c.SalesTotal = add(c.SalesTotal, e.Amount)
		case journal.CategoryRefund:
			c.RefundsTotal = add(c.RefundsTotal, e.Amount)
		case journal.CategoryVoid:
			c.VoidsTotal = add(c.VoidsTotal, e.Amount)
		case journal.CategoryDiscount:
			c.DiscountsTotal = add(c.DiscountsTotal, e.Amount)
		}
	}
	c.NetSales = c.SalesTotal.
		Subtract(c.RefundsTotal).
		Subtract(c.VoidsTotal).
		Subtract(c.DiscountsTotal)
	return c
}

// add folds b into a, treating a zero-currency zero as identity so
// accumulators in one currency can start from the zero value.
func add(a, b types.Money) types.Money {
	if a.Currency == "" || (a.IsZero() && a.Currency != b.Currency) {
		if b.Currency == "" {
			return a
		}
		return types.New(a.Amount+b.Amount, b.Currency)
	}
	if b.Currency == "" || (b.IsZero() && a.Currency != b.Currency) {
		return types.New(a.Amount+b.Amount, a.Currency)
	}
	return a.Add(b)
}
