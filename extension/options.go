package extension

import (
	shopbook "github.com/xraph/shopbook"
	"github.com/xraph/shopbook/plugin"
	"github.com/xraph/shopbook/store"
)

// Option configures the Shopbook Forge extension.
type Option func(*Extension)

// WithStore sets the store for the engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEngineOption passes a shopbook.Option through to the underlying engine.
func WithEngineOption(opt shopbook.Option) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, opt)
	}
}

// WithPlugin registers a shopbook plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.engineOpts = append(e.engineOpts, shopbook.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithDefaultCurrency sets the currency applied to opening balances
// created without an explicit currency.
func WithDefaultCurrency(code string) Option {
	return func(e *Extension) { e.config.DefaultCurrency = code }
}

// WithBootstrapShops lists shop IDs whose default chart of accounts is
// created on start.
func WithBootstrapShops(shopIDs ...string) Option {
	return func(e *Extension) {
		e.config.BootstrapShops = append(e.config.BootstrapShops, shopIDs...)
	}
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
