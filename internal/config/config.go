// Package config provides configuration loading and management.
package config

// DefaultCatalogFile is the catalog document name relative to a destination.
const DefaultCatalogFile = "catalog-info.yaml"

// DefaultReadmeBaseURL is where generator documentation is published.
const DefaultReadmeBaseURL = "https://github.com/bcgov/nr-repository-composer/blob/main/README.md"

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true.
	Timestamps *bool `mapstructure:"timestamps"`
}

// Config represents the nrc CLI configuration.
// Loaded from ~/.nrc/config.yaml and NRC_* environment variables.
type Config struct {
	// CatalogFile is the name of the catalog document each generator
	// reads and writes, relative to the destination directory.
	// Env: NRC_CATALOG_FILE
	CatalogFile string `mapstructure:"catalogFile"`

	// Headless makes every generator fail instead of prompting.
	// Env: NRC_HEADLESS
	Headless bool `mapstructure:"headless"`

	// ReadmeBaseURL is the base URL of the generator documentation shown in
	// banners and reports.
	// Env: NRC_README_BASE_URL
	ReadmeBaseURL string `mapstructure:"readmeBaseURL"`

	// Log contains logging-related settings.
	Log LogConfig `mapstructure:"log"`
}

// DefaultConfig returns a Config with all default values populated.
func DefaultConfig() *Config {
	return &Config{
		CatalogFile:   DefaultCatalogFile,
		ReadmeBaseURL: DefaultReadmeBaseURL,
	}
}

// WithDefaults returns a copy of the config with empty values defaulted.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.CatalogFile == "" {
		out.CatalogFile = DefaultCatalogFile
	}
	if out.ReadmeBaseURL == "" {
		out.ReadmeBaseURL = DefaultReadmeBaseURL
	}
	return &out
}

// ResolvedValue records the final value of a config key and where it came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
