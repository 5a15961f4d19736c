package config

import (
	"os"

	"github.com/bcgov/nr-repository-composer/internal/output"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	ConfigPath string
	Source     ConfigSource
	Shadowed   map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) NRC_CONFIG env, (3) ~/.nrc/config.yaml default
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv("NRC_CONFIG")

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}
	defaultPath := paths.ConfigFile

	switch {
	case opts.FlagValue != "":
		result.ConfigPath = opts.FlagValue
		result.Source = SourceFlag
		if envValue != "" {
			result.Shadowed[SourceEnv] = envValue
		}
		result.Shadowed[SourceDefault] = defaultPath
	case envValue != "":
		result.ConfigPath = envValue
		result.Source = SourceEnv
		result.Shadowed[SourceDefault] = defaultPath
	default:
		result.ConfigPath = defaultPath
		result.Source = SourceDefault
	}

	return result, nil
}

// ResolveHeadlessOptions contains options for headless mode resolution.
type ResolveHeadlessOptions struct {
	// FlagSet is true when --headless was given on the command line.
	FlagSet bool
	// FlagValue is the --headless flag value.
	FlagValue bool
	// Loaded is the value produced by the loader (env, config or default).
	Loaded bool
	// LoadedSource is where Loaded came from.
	LoadedSource ConfigSource
}

// ResolveHeadless resolves headless mode: an explicit flag wins over the
// loaded env/config value.
func ResolveHeadless(opts ResolveHeadlessOptions) ResolvedValue {
	rv := ResolvedValue{
		Key:      "headless",
		Shadowed: make(map[ConfigSource]any),
	}
	if opts.FlagSet {
		rv.Value = opts.FlagValue
		rv.Source = SourceFlag
		if opts.LoadedSource != SourceDefault && opts.LoadedSource != "" {
			rv.Shadowed[opts.LoadedSource] = opts.Loaded
		}
		return rv
	}
	rv.Value = opts.Loaded
	rv.Source = opts.LoadedSource
	if rv.Source == "" {
		rv.Source = SourceDefault
	}
	return rv
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(values []ResolvedValue) {
	for _, v := range values {
		output.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			output.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
