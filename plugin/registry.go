package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit              []OnInit
	onShutdown          []OnShutdown
	onAccountCreated    []OnAccountCreated
	onAccountUpdated    []OnAccountUpdated
	onAccountDeleted    []OnAccountDeleted
	onChartBootstrapped []OnChartBootstrapped
	onEntryPosted       []OnEntryPosted
	onEntryUpdated      []OnEntryUpdated
	onEntryDeleted      []OnEntryDeleted
	onBalancesComputed  []OnBalancesComputed
	onReportGenerated   []OnReportGenerated
	entryValidators     []EntryValidator
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnAccountCreated); ok {
		r.onAccountCreated = append(r.onAccountCreated, v)
	}
	if v, ok := p.(OnAccountUpdated); ok {
		r.onAccountUpdated = append(r.onAccountUpdated, v)
	}
	if v, ok := p.(OnAccountDeleted); ok {
		r.onAccountDeleted = append(r.onAccountDeleted, v)
	}
	if v, ok := p.(OnChartBootstrapped); ok {
		r.onChartBootstrapped = append(r.onChartBootstrapped, v)
	}
	if v, ok := p.(OnEntryPosted); ok {
		r.onEntryPosted = append(r.onEntryPosted, v)
	}
	if v, ok := p.(OnEntryUpdated); ok {
		r.onEntryUpdated = append(r.onEntryUpdated, v)
	}
	if v, ok := p.(OnEntryDeleted); ok {
		r.onEntryDeleted = append(r.onEntryDeleted, v)
	}
	if v, ok := p.(OnBalancesComputed); ok {
		r.onBalancesComputed = append(r.onBalancesComputed, v)
	}
	if v, ok := p.(OnReportGenerated); ok {
		r.onReportGenerated = append(r.onReportGenerated, v)
	}
	if v, ok := p.(EntryValidator); ok {
		r.entryValidators = append(r.entryValidators, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnAccountCreated)(nil)).Elem(), "OnAccountCreated")
	checkInterface(reflect.TypeOf((*OnAccountUpdated)(nil)).Elem(), "OnAccountUpdated")
	checkInterface(reflect.TypeOf((*OnAccountDeleted)(nil)).Elem(), "OnAccountDeleted")
	checkInterface(reflect.TypeOf((*OnChartBootstrapped)(nil)).Elem(), "OnChartBootstrapped")
	checkInterface(reflect.TypeOf((*OnEntryPosted)(nil)).Elem(), "OnEntryPosted")
	checkInterface(reflect.TypeOf((*OnReportGenerated)(nil)).Elem(), "OnReportGenerated")
	checkInterface(reflect.TypeOf((*EntryValidator)(nil)).Elem(), "EntryValidator")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, engine interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, engine)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAccountCreated emits an account created event.
func (r *Registry) EmitAccountCreated(ctx context.Context, acct interface{}) {
	r.mu.RLock()
	plugins := r.onAccountCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAccountCreated(ctx, acct)
		}); err != nil {
			r.logger.Warn("plugin OnAccountCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAccountUpdated emits an account updated event.
func (r *Registry) EmitAccountUpdated(ctx context.Context, oldAcct, newAcct interface{}) {
	r.mu.RLock()
	plugins := r.onAccountUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAccountUpdated(ctx, oldAcct, newAcct)
		}); err != nil {
			r.logger.Warn("plugin OnAccountUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitAccountDeleted emits an account deleted event.
func (r *Registry) EmitAccountDeleted(ctx context.Context, accountID string) {
	r.mu.RLock()
	plugins := r.onAccountDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnAccountDeleted(ctx, accountID)
		}); err != nil {
			r.logger.Warn("plugin OnAccountDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitChartBootstrapped emits a chart bootstrapped event.
func (r *Registry) EmitChartBootstrapped(ctx context.Context, shopID string, accounts []interface{}) {
	r.mu.RLock()
	plugins := r.onChartBootstrapped
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnChartBootstrapped(ctx, shopID, accounts)
		}); err != nil {
			r.logger.Warn("plugin OnChartBootstrapped failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryPosted emits an entry posted event.
func (r *Registry) EmitEntryPosted(ctx context.Context, entry interface{}) {
	r.mu.RLock()
	plugins := r.onEntryPosted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryPosted(ctx, entry)
		}); err != nil {
			r.logger.Warn("plugin OnEntryPosted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryUpdated emits an entry updated event.
func (r *Registry) EmitEntryUpdated(ctx context.Context, oldEntry, newEntry interface{}) {
	r.mu.RLock()
	plugins := r.onEntryUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryUpdated(ctx, oldEntry, newEntry)
		}); err != nil {
			r.logger.Warn("plugin OnEntryUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryDeleted emits an entry deleted event.
func (r *Registry) EmitEntryDeleted(ctx context.Context, entryID string) {
	r.mu.RLock()
	plugins := r.onEntryDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryDeleted(ctx, entryID)
		}); err != nil {
			r.logger.Warn("plugin OnEntryDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitBalancesComputed emits a balances computed event.
func (r *Registry) EmitBalancesComputed(ctx context.Context, shopID string, count int) {
	r.mu.RLock()
	plugins := r.onBalancesComputed
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnBalancesComputed(ctx, shopID, count)
		}); err != nil {
			r.logger.Warn("plugin OnBalancesComputed failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitReportGenerated emits a report generated event.
func (r *Registry) EmitReportGenerated(ctx context.Context, shopID string, report interface{}) {
	r.mu.RLock()
	plugins := r.onReportGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnReportGenerated(ctx, shopID, report)
		}); err != nil {
			r.logger.Warn("plugin OnReportGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// ValidateEntry runs all registered entry validators. Unlike event
// emissions, a validator error propagates to the caller and rejects
// the posting.
func (r *Registry) ValidateEntry(ctx context.Context, entry interface{}) error {
	r.mu.RLock()
	validators := r.entryValidators
	r.mu.RUnlock()

	for _, v := range validators {
		if err := r.callWithTimeout(ctx, v.Name(), func() error {
			return v.ValidateEntry(ctx, entry)
		}); err != nil {
			return fmt.Errorf("plugin %s rejected entry: %w", v.Name(), err)
		}
	}
	return nil
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
