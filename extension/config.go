package extension

// Config holds the Shopbook extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.shopbook" or "shopbook" keys).
type Config struct {
	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// DefaultCurrency is the ISO 4217 code applied to opening balances
	// created without an explicit currency (default: "usd").
	DefaultCurrency string `json:"default_currency" mapstructure:"default_currency" yaml:"default_currency"`

	// BootstrapShops lists shop IDs whose default chart of accounts is
	// created on start if the shop has no accounts yet.
	BootstrapShops []string `json:"bootstrap_shops" mapstructure:"bootstrap_shops" yaml:"bootstrap_shops"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultCurrency: "usd",
	}
}
