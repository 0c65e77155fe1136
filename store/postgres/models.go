package postgres

import (
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/types"
)

// ==================== Account models ====================

type accountModel struct {
	grove.BaseModel `grove:"table:shopbook_accounts"`

	ID              string    `grove:"id,pk"`
	ShopID          string    `grove:"shop_id"`
	Name            string    `grove:"name"`
	Type            string    `grove:"type"`
	OpeningCents    int64     `grove:"opening_cents"`
	OpeningCurrency string    `grove:"opening_currency"`
	Description     string    `grove:"description"`
	CreatedAt       time.Time `grove:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"`
}

func toAccountModel(a *account.Account) *accountModel {
	return &accountModel{
		ID:              a.ID.String(),
		ShopID:          a.ShopID,
		Name:            a.Name,
		Type:            string(a.Type),
		OpeningCents:    a.OpeningBalance.Amount,
		OpeningCurrency: a.OpeningBalance.Currency,
		Description:     a.Description,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func fromAccountModel(m *accountModel) (*account.Account, error) {
	accountID, err := id.ParseAccountID(m.ID)
	if err != nil {
		return nil, err
	}

	return &account.Account{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:             accountID,
		ShopID:         m.ShopID,
		Name:           m.Name,
		Type:           account.Type(m.Type),
		OpeningBalance: types.New(m.OpeningCents, m.OpeningCurrency),
		Description:    m.Description,
	}, nil
}

// ==================== Journal entry models ====================

type entryModel struct {
	grove.BaseModel `grove:"table:shopbook_entries"`

	ID              string    `grove:"id,pk"`
	ShopID          string    `grove:"shop_id"`
	Date            time.Time `grove:"date"`
	Description     string    `grove:"description"`
	DebitAccountID  string    `grove:"debit_account_id"`
	CreditAccountID string    `grove:"credit_account_id"`
	AmountCents     int64     `grove:"amount_cents"`
	AmountCurrency  string    `grove:"amount_currency"`
	Reference       string    `grove:"reference"`
	Category        string    `grove:"category"`
	PaymentMethod   string    `grove:"payment_method"`
	CreatedAt       time.Time `grove:"created_at"`
	UpdatedAt       time.Time `grove:"updated_at"`
}

func toEntryModel(e *journal.Entry) *entryModel {
	return &entryModel{
		ID:              e.ID.String(),
		ShopID:          e.ShopID,
		Date:            e.Date,
		Description:     e.Description,
		DebitAccountID:  e.DebitAccountID.String(),
		CreditAccountID: e.CreditAccountID.String(),
		AmountCents:     e.Amount.Amount,
		AmountCurrency:  e.Amount.Currency,
		Reference:       e.Reference,
		Category:        string(e.Category),
		PaymentMethod:   e.PaymentMethod,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func fromEntryModel(m *entryModel) (*journal.Entry, error) {
	entryID, err := id.ParseEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	debitID, err := id.ParseAccountID(m.DebitAccountID)
	if err != nil {
		return nil, err
	}
	creditID, err := id.ParseAccountID(m.CreditAccountID)
	if err != nil {
		return nil, err
	}

	return &journal.Entry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:              entryID,
		ShopID:          m.ShopID,
		Date:            m.Date,
		Description:     m.Description,
		DebitAccountID:  debitID,
		CreditAccountID: creditID,
		Amount:          types.New(m.AmountCents, m.AmountCurrency),
		Reference:       m.Reference,
		Category:        journal.Category(m.Category),
		PaymentMethod:   m.PaymentMethod,
	}, nil
}
