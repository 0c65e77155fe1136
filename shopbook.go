package shopbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/balance"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	"github.com/xraph/shopbook/plugin"
	"github.com/xraph/shopbook/report"
	"github.com/xraph/shopbook/store"
	"github.com/xraph/shopbook/types"
)

// Engine is the main ledger engine. Every operation is scoped to a
// shop: a shop never sees another shop's accounts or entries.
type Engine struct {
	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	balances *balance.Cache

	// Configuration
	defaultCurrency string
	clock           func() time.Time
}

// New creates a new Engine instance.
func New(s store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:           s,
		plugins:         plugin.NewRegistry(),
		logger:          slog.Default(),
		balances:        balance.NewCache(),
		defaultCurrency: "usd",
		clock:           time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Option configures an Engine instance.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
		e.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Engine) {
		_ = e.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithDefaultCurrency sets the currency used for bootstrapped charts
// and zero-valued report totals.
func WithDefaultCurrency(currency string) Option {
	return func(e *Engine) {
		e.defaultCurrency = strings.ToLower(currency)
	}
}

// WithClock overrides the time source. Used in tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// Start migrates the store and initializes plugins.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.store.Migrate(ctx); err != nil {
		return err
	}

	e.plugins.EmitInit(ctx, e)

	e.logger.Info("shopbook started",
		"default_currency", e.defaultCurrency,
		"plugins", e.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Engine.
func (e *Engine) Stop() error {
	ctx := context.Background()
	e.plugins.EmitShutdown(ctx)

	return e.store.Close()
}

// Plugins returns the plugin registry.
func (e *Engine) Plugins() *plugin.Registry { return e.plugins }

// ──────────────────────────────────────────────────
// Account Management
// ──────────────────────────────────────────────────

// CreateAccount creates a new account in a shop's chart.
func (e *Engine) CreateAccount(ctx context.Context, a *account.Account) error {
	if err := e.validateAccount(a); err != nil {
		return err
	}

	if a.ID == (id.AccountID{}) {
		a.ID = id.NewAccountID()
	}
	a.Entity = types.NewEntity()
	currency := a.OpeningBalance.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}
	a.OpeningBalance = types.New(a.OpeningBalance.Amount, currency)

	if err := e.store.CreateAccount(ctx, a); err != nil {
		return err
	}

	e.balances.InvalidateShop(a.ShopID)
	e.plugins.EmitAccountCreated(ctx, a)
	return nil
}

// GetAccount retrieves an account, verifying shop ownership.
func (e *Engine) GetAccount(ctx context.Context, shopID string, accountID id.AccountID) (*account.Account, error) {
	a, err := e.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if a.ShopID != shopID {
		return nil, ErrShopMismatch
	}
	return a, nil
}

// ListAccounts lists a shop's accounts.
func (e *Engine) ListAccounts(ctx context.Context, shopID string, opts account.ListOpts) ([]*account.Account, error) {
	if opts.Type != "" && !opts.Type.Valid() {
		return nil, ErrInvalidAccountType
	}
	return e.store.ListAccounts(ctx, shopID, opts)
}

// UpdateAccount updates an account's mutable fields. The account type
// and shop are fixed at creation.
func (e *Engine) UpdateAccount(ctx context.Context, shopID string, a *account.Account) error {
	old, err := e.GetAccount(ctx, shopID, a.ID)
	if err != nil {
		return err
	}
	if a.Type != old.Type {
		return ValidationError{Field: "type", Message: "account type cannot change"}
	}
	a.ShopID = old.ShopID
	if err := e.validateAccount(a); err != nil {
		return err
	}
	currency := a.OpeningBalance.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}
	a.OpeningBalance = types.New(a.OpeningBalance.Amount, currency)

	a.CreatedAt = old.CreatedAt
	a.Touch()

	if err := e.store.UpdateAccount(ctx, a); err != nil {
		return err
	}

	e.balances.InvalidateShop(shopID)
	e.plugins.EmitAccountUpdated(ctx, old, a)
	return nil
}

// DeleteAccount removes an account, refusing while journal entries
// still reference it. The existence check and the delete are separate
// store calls, so an entry posted between them can orphan a reference;
// callers needing a hard guarantee must serialize writes per shop.
func (e *Engine) DeleteAccount(ctx context.Context, shopID string, accountID id.AccountID) error {
	if _, err := e.GetAccount(ctx, shopID, accountID); err != nil {
		return err
	}

	n, err := e.store.CountEntriesForAccount(ctx, shopID, accountID)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("%w: %d entries reference %s", ErrAccountInUse, n, accountID)
	}

	if err := e.store.DeleteAccount(ctx, accountID); err != nil {
		return err
	}

	e.balances.InvalidateShop(shopID)
	e.plugins.EmitAccountDeleted(ctx, accountID.String())
	return nil
}

// InitializeDefaultAccounts bootstraps the default chart of accounts
// for a shop. A shop that already has any account is left untouched,
// so repeat calls are no-ops. The emptiness check and the inserts are
// not atomic; two concurrent calls for a brand-new shop can both pass
// the check and duplicate the chart.
func (e *Engine) InitializeDefaultAccounts(ctx context.Context, shopID string) ([]*account.Account, error) {
	if shopID == "" {
		return nil, ValidationError{Field: "shop_id", Message: "is required"}
	}

	existing, err := e.store.ListAccounts(ctx, shopID, account.ListOpts{Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}

	chart := account.DefaultChart(shopID, e.defaultCurrency)
	for _, a := range chart {
		a.ID = id.NewAccountID()
		a.Entity = types.NewEntity()
		if err := e.store.CreateAccount(ctx, a); err != nil {
			return nil, fmt.Errorf("bootstrap account %q: %w", a.Name, err)
		}
	}

	e.logger.Info("default chart created",
		"shop_id", shopID,
		"accounts", len(chart),
	)

	created := make([]interface{}, len(chart))
	for i, a := range chart {
		created[i] = a
	}
	e.plugins.EmitChartBootstrapped(ctx, shopID, created)

	return chart, nil
}

// ──────────────────────────────────────────────────
// Journal Entries
// ──────────────────────────────────────────────────

// PostEntry records a double-sided journal entry. Both accounts must
// exist in the entry's shop before the entry is accepted.
func (e *Engine) PostEntry(ctx context.Context, entry *journal.Entry) error {
	if err := e.validateEntry(entry); err != nil {
		return err
	}
	if err := e.checkEntryAccounts(ctx, entry); err != nil {
		return err
	}
	if err := e.plugins.ValidateEntry(ctx, entry); err != nil {
		return err
	}

	if entry.ID == (id.EntryID{}) {
		entry.ID = id.NewEntryID()
	}
	entry.Entity = types.NewEntity()
	if entry.Category == "" {
		entry.Category = journal.CategoryGeneral
	}

	if err := e.store.CreateEntry(ctx, entry); err != nil {
		return err
	}

	e.balances.InvalidateShop(entry.ShopID)
	e.plugins.EmitEntryPosted(ctx, entry)
	return nil
}

// GetEntry retrieves a journal entry, verifying shop ownership.
func (e *Engine) GetEntry(ctx context.Context, shopID string, entryID id.EntryID) (*journal.Entry, error) {
	entry, err := e.store.GetEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.ShopID != shopID {
		return nil, ErrShopMismatch
	}
	return entry, nil
}

// ListEntries lists a shop's journal entries.
func (e *Engine) ListEntries(ctx context.Context, shopID string, opts journal.ListOpts) ([]*journal.Entry, error) {
	if opts.Category != "" && !opts.Category.Valid() {
		return nil, ErrInvalidCategory
	}
	return e.store.ListEntries(ctx, shopID, opts)
}

// UpdateEntry replaces a posted entry. The replacement passes the same
// validation as a fresh posting.
func (e *Engine) UpdateEntry(ctx context.Context, shopID string, entry *journal.Entry) error {
	old, err := e.GetEntry(ctx, shopID, entry.ID)
	if err != nil {
		return err
	}
	entry.ShopID = old.ShopID

	if err := e.validateEntry(entry); err != nil {
		return err
	}
	if err := e.checkEntryAccounts(ctx, entry); err != nil {
		return err
	}
	if err := e.plugins.ValidateEntry(ctx, entry); err != nil {
		return err
	}

	if entry.Category == "" {
		entry.Category = journal.CategoryGeneral
	}
	entry.CreatedAt = old.CreatedAt
	entry.Touch()

	if err := e.store.UpdateEntry(ctx, entry); err != nil {
		return err
	}

	e.balances.InvalidateShop(shopID)
	e.plugins.EmitEntryUpdated(ctx, old, entry)
	return nil
}

// DeleteEntry removes a journal entry. Balances derived afterwards no
// longer include it.
func (e *Engine) DeleteEntry(ctx context.Context, shopID string, entryID id.EntryID) error {
	if _, err := e.GetEntry(ctx, shopID, entryID); err != nil {
		return err
	}

	if err := e.store.DeleteEntry(ctx, entryID); err != nil {
		return err
	}

	e.balances.InvalidateShop(shopID)
	e.plugins.EmitEntryDeleted(ctx, entryID.String())
	return nil
}

// ──────────────────────────────────────────────────
// Balances
// ──────────────────────────────────────────────────

// AccountBalance derives one account's balance: opening balance plus
// debits minus credits, the same formula for every account type.
func (e *Engine) AccountBalance(ctx context.Context, shopID string, accountID id.AccountID) (types.Money, error) {
	if bal, ok := e.balances.Get(shopID, accountID.String()); ok {
		return bal, nil
	}

	a, err := e.GetAccount(ctx, shopID, accountID)
	if err != nil {
		return types.Money{}, err
	}

	entries, err := e.store.ListEntries(ctx, shopID, journal.ListOpts{AccountID: accountID})
	if err != nil {
		return types.Money{}, err
	}

	bal := balance.ForAccount(a, entries)
	e.balances.Put(shopID, accountID.String(), bal)
	return bal, nil
}

// AllBalances derives every account balance for a shop in one pass
// over the journal, keyed by account ID.
func (e *Engine) AllBalances(ctx context.Context, shopID string) (map[string]types.Money, error) {
	accounts, err := e.store.ListAccounts(ctx, shopID, account.ListOpts{})
	if err != nil {
		return nil, err
	}
	entries, err := e.store.ListEntries(ctx, shopID, journal.ListOpts{})
	if err != nil {
		return nil, err
	}

	balances := balance.All(accounts, entries)
	e.balances.PutAll(shopID, balances)
	e.plugins.EmitBalancesComputed(ctx, shopID, len(balances))
	return balances, nil
}

// ──────────────────────────────────────────────────
// Reporting
// ──────────────────────────────────────────────────

// AccountingReport aggregates a shop's ledger over [start, end).
func (e *Engine) AccountingReport(ctx context.Context, shopID string, start, end time.Time) (*report.AccountingReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrInvalidDate
	}
	if !start.Before(end) {
		return nil, ValidationError{Field: "start", Message: "must be before end"}
	}

	accounts, err := e.store.ListAccounts(ctx, shopID, account.ListOpts{})
	if err != nil {
		return nil, err
	}
	entries, err := e.store.ListEntries(ctx, shopID, journal.ListOpts{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	rep := report.Accounting(accounts, entries, start, end, e.defaultCurrency)
	e.plugins.EmitReportGenerated(ctx, shopID, rep)
	return rep, nil
}

// DailyClosing summarizes one calendar day of activity for a shop.
func (e *Engine) DailyClosing(ctx context.Context, shopID string, day time.Time) (*report.DailyClosing, error) {
	if day.IsZero() {
		return nil, ErrInvalidDate
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	entries, err := e.store.ListEntries(ctx, shopID, journal.ListOpts{Start: start, End: end})
	if err != nil {
		return nil, err
	}

	closing := report.Closing(entries, start, e.defaultCurrency)
	e.plugins.EmitReportGenerated(ctx, shopID, closing)
	return closing, nil
}

// ──────────────────────────────────────────────────
// Validation
// ──────────────────────────────────────────────────

func (e *Engine) validateAccount(a *account.Account) error {
	if a.ShopID == "" {
		return ValidationError{Field: "shop_id", Message: "is required"}
	}
	if strings.TrimSpace(a.Name) == "" {
		return ValidationError{Field: "name", Message: "is required"}
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAccountType, a.Type)
	}
	return nil
}

func (e *Engine) validateEntry(entry *journal.Entry) error {
	if entry.ShopID == "" {
		return ValidationError{Field: "shop_id", Message: "is required"}
	}
	if strings.TrimSpace(entry.Description) == "" {
		return ValidationError{Field: "description", Message: "is required"}
	}
	if entry.DebitAccountID.IsNil() {
		return ValidationError{Field: "debit_account_id", Message: "is required"}
	}
	if entry.CreditAccountID.IsNil() {
		return ValidationError{Field: "credit_account_id", Message: "is required"}
	}
	if entry.DebitAccountID.String() == entry.CreditAccountID.String() {
		return ErrSameAccount
	}
	currency := entry.Amount.Currency
	if currency == "" {
		currency = e.defaultCurrency
	}
	entry.Amount = types.New(entry.Amount.Amount, currency)
	if !entry.Amount.IsPositive() {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, entry.Amount.Amount)
	}
	if entry.Date.IsZero() {
		return ErrInvalidDate
	}
	if entry.Category != "" && !entry.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, entry.Category)
	}
	return nil
}

// checkEntryAccounts verifies both sides of an entry exist, belong to
// the entry's shop, and carry the entry's currency. Balance folds add
// entry amounts onto opening balances, so a currency mismatch must be
// caught here, before the entry is persisted.
func (e *Engine) checkEntryAccounts(ctx context.Context, entry *journal.Entry) error {
	for _, accountID := range []id.AccountID{entry.DebitAccountID, entry.CreditAccountID} {
		a, err := e.store.GetAccount(ctx, accountID)
		if err != nil {
			if errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrNotFound) {
				return fmt.Errorf("%w: %s", ErrAccountNotFound, accountID)
			}
			return err
		}
		if a.ShopID != entry.ShopID {
			return ErrShopMismatch
		}
		if a.OpeningBalance.Currency != entry.Amount.Currency {
			return ValidationError{
				Field: "amount",
				Message: fmt.Sprintf("currency %q does not match account %s currency %q",
					entry.Amount.Currency, accountID, a.OpeningBalance.Currency),
			}
		}
	}
	return nil
}
