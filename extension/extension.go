// Package extension provides the Forge extension adapter for Shopbook.
//
// It implements the forge.Extension interface to integrate Shopbook
// into a Forge application with automatic dependency discovery,
// DI registration, and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.shopbook" or
// "shopbook" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	shopbook "github.com/xraph/shopbook"
	"github.com/xraph/shopbook/store"
	"github.com/xraph/shopbook/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "shopbook"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Multi-tenant double-entry shop ledger engine"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts Shopbook as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	engine     *shopbook.Engine
	store      store.Store
	engineOpts []shopbook.Option
}

// New creates a new Shopbook Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying Shopbook engine.
// This is nil until Register is called.
func (e *Extension) Engine() *shopbook.Engine { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	// Build engine options from resolved config.
	opts := e.buildEngineOpts()

	eng := shopbook.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*shopbook.Engine, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("shopbook: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	for _, shopID := range e.config.BootstrapShops {
		if _, err := e.engine.InitializeDefaultAccounts(ctx, shopID); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("shopbook: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEngineOpts constructs shopbook.Option values from the resolved config.
func (e *Extension) buildEngineOpts() []shopbook.Option {
	opts := make([]shopbook.Option, 0, len(e.engineOpts)+1)

	if e.config.DefaultCurrency != "" {
		opts = append(opts, shopbook.WithDefaultCurrency(e.config.DefaultCurrency))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.engineOpts...)

	return opts
}

// --- Config Loading (mirrors grove/shield extension pattern) ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("shopbook: configuration is required but not found in config files; " +
				"ensure 'extensions.shopbook' or 'shopbook' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("shopbook: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("default_currency", e.config.DefaultCurrency),
		forge.F("bootstrap_shops", len(e.config.BootstrapShops)),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.shopbook" first (namespaced pattern).
	if cm.IsSet("extensions.shopbook") {
		if err := cm.Bind("extensions.shopbook", &cfg); err == nil {
			e.Logger().Debug("shopbook: loaded config from file",
				forge.F("key", "extensions.shopbook"),
			)
			return cfg, true
		}
		e.Logger().Warn("shopbook: failed to bind extensions.shopbook config",
			forge.F("error", "bind failed"),
		)
	}

	// Try legacy "shopbook" key.
	if cm.IsSet("shopbook") {
		if err := cm.Bind("shopbook", &cfg); err == nil {
			e.Logger().Debug("shopbook: loaded config from file",
				forge.F("key", "shopbook"),
			)
			return cfg, true
		}
		e.Logger().Warn("shopbook: failed to bind shopbook config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = defaults.DefaultCurrency
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic bool flags fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.DefaultCurrency == "" && programmaticConfig.DefaultCurrency != "" {
		yamlConfig.DefaultCurrency = programmaticConfig.DefaultCurrency
	}

	// Slice fields: YAML takes precedence, programmatic fills gaps.
	if len(yamlConfig.BootstrapShops) == 0 && len(programmaticConfig.BootstrapShops) != 0 {
		yamlConfig.BootstrapShops = programmaticConfig.BootstrapShops
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
