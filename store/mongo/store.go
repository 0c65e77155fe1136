package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/shopbook"
	"github.com/xraph/shopbook/account"
	"github.com/xraph/shopbook/id"
	"github.com/xraph/shopbook/journal"
	shopbookstore "github.com/xraph/shopbook/store"
)

// Collection name constants.
const (
	colAccounts = "shopbook_accounts"
	colEntries  = "shopbook_entries"
)

// compile-time interface check
var _ shopbookstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all shopbook collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("shopbook/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Account Store ====================

func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	m := toAccountModel(a)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shopbook.ErrAlreadyExists
		}
		return fmt.Errorf("shopbook/mongo: create account: %w", err)
	}
	return nil
}

func (s *Store) GetAccount(ctx context.Context, accountID id.AccountID) (*account.Account, error) {
	var m accountModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": accountID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, shopbook.ErrAccountNotFound
		}
		return nil, fmt.Errorf("shopbook/mongo: get account: %w", err)
	}
	return fromAccountModel(&m)
}

func (s *Store) ListAccounts(ctx context.Context, shopID string, opts account.ListOpts) ([]*account.Account, error) {
	var models []accountModel

	filter := bson.M{"shop_id": shopID}
	if opts.Type != "" {
		filter["type"] = string(opts.Type)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shopbook/mongo: list accounts: %w", err)
	}

	result := make([]*account.Account, len(models))
	for i := range models {
		a, err := fromAccountModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = a
	}
	return result, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *account.Account) error {
	m := toAccountModel(a)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shopbook/mongo: update account: %w", err)
	}
	if res.MatchedCount() == 0 {
		return shopbook.ErrAccountNotFound
	}
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID id.AccountID) error {
	res, err := s.mdb.NewDelete((*accountModel)(nil)).
		Filter(bson.M{"_id": accountID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shopbook/mongo: delete account: %w", err)
	}
	if res.DeletedCount() == 0 {
		return shopbook.ErrAccountNotFound
	}
	return nil
}

// ==================== Journal entry Store ====================

func (s *Store) CreateEntry(ctx context.Context, e *journal.Entry) error {
	m := toEntryModel(e)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return shopbook.ErrAlreadyExists
		}
		return fmt.Errorf("shopbook/mongo: create entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, entryID id.EntryID) (*journal.Entry, error) {
	var m entryModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": entryID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, shopbook.ErrEntryNotFound
		}
		return nil, fmt.Errorf("shopbook/mongo: get entry: %w", err)
	}
	return fromEntryModel(&m)
}

func (s *Store) ListEntries(ctx context.Context, shopID string, opts journal.ListOpts) ([]*journal.Entry, error) {
	var models []entryModel

	filter := bson.M{"shop_id": shopID}
	if !opts.Start.IsZero() || !opts.End.IsZero() {
		dateRange := bson.M{}
		if !opts.Start.IsZero() {
			dateRange["$gte"] = opts.Start
		}
		if !opts.End.IsZero() {
			dateRange["$lt"] = opts.End
		}
		filter["date"] = dateRange
	}
	if !opts.AccountID.IsNil() {
		filter["$or"] = bson.A{
			bson.M{"debit_account_id": opts.AccountID.String()},
			bson.M{"credit_account_id": opts.AccountID.String()},
		}
	}
	if opts.Category != "" {
		filter["category"] = string(opts.Category)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("shopbook/mongo: list entries: %w", err)
	}

	result := make([]*journal.Entry, len(models))
	for i := range models {
		e, err := fromEntryModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *journal.Entry) error {
	m := toEntryModel(e)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shopbook/mongo: update entry: %w", err)
	}
	if res.MatchedCount() == 0 {
		return shopbook.ErrEntryNotFound
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID id.EntryID) error {
	res, err := s.mdb.NewDelete((*entryModel)(nil)).
		Filter(bson.M{"_id": entryID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("shopbook/mongo: delete entry: %w", err)
	}
	if res.DeletedCount() == 0 {
		return shopbook.ErrEntryNotFound
	}
	return nil
}

func (s *Store) CountEntriesForAccount(ctx context.Context, shopID string, accountID id.AccountID) (int64, error) {
	n, err := s.mdb.Collection(colEntries).CountDocuments(ctx, bson.M{
		"shop_id": shopID,
		"$or": bson.A{
			bson.M{"debit_account_id": accountID.String()},
			bson.M{"credit_account_id": accountID.String()},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("shopbook/mongo: count entries for account: %w", err)
	}
	return n, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all shopbook collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colAccounts: {
			{
				Keys:    bson.D{{Key: "shop_id", Value: 1}, {Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "type", Value: 1}}},
		},
		colEntries: {
			{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "debit_account_id", Value: 1}}},
			{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "credit_account_id", Value: 1}}},
			{Keys: bson.D{{Key: "shop_id", Value: 1}, {Key: "category", Value: 1}, {Key: "date", Value: 1}}},
		},
	}
}
