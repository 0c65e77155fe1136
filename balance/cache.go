package balance

import (
	"sync"

	"github.com/xraph/shopbook/types"
)

// Cache memoizes derived balances between ledger writes. Any write to a
// shop's accounts or entries must invalidate the whole shop: a single
// entry moves two balances, and opening-balance edits move one more.
type Cache struct {
	mu   sync.RWMutex
	byID map[string]map[string]types.Money // shopID -> accountID -> balance
}

// NewCache returns an empty balance cache.
func NewCache() *Cache {
	return &Cache{byID: make(map[string]map[string]types.Money)}
}

// Get returns the cached balance for an account, if present.
func (c *Cache) Get(shopID, accountID string) (types.Money, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	shop, ok := c.byID[shopID]
	if !ok {
		return types.Money{}, false
	}
	bal, ok := shop[accountID]
	return bal, ok
}

// Put records one account's balance.
func (c *Cache) Put(shopID, accountID string, bal types.Money) {
	c.mu.Lock()
	defer c.mu.Unlock()
	shop, ok := c.byID[shopID]
	if !ok {
		shop = make(map[string]types.Money)
		c.byID[shopID] = shop
	}
	shop[accountID] = bal
}

// PutAll records a full batch of balances for a shop, replacing any
// cached values for that shop.
func (c *Cache) PutAll(shopID string, balances map[string]types.Money) {
	shop := make(map[string]types.Money, len(balances))
	for aid, bal := range balances {
		shop[aid] = bal
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[shopID] = shop
}

// InvalidateShop drops every cached balance for a shop.
func (c *Cache) InvalidateShop(shopID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byID, shopID)
}

// Reset drops the entire cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID = make(map[string]map[string]types.Money)
}
