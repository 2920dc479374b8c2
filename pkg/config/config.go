// Package config provides configuration management for GNgenomes.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Fetch: email, api_key, batch_size, ret_max, delay_ms
//   - Enrich: delay_ms, lookup_delay_ms, max_depth, timeout_sec
//   - Log: level, format, destination
//   - General: jobs_number, data_dir
//
// Runtime-only fields (CLI flags only):
//   - Groups, Enrich.Authority (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNGENOMES_ prefix with underscores for nesting:
//
//	GNGENOMES_FETCH_EMAIL=curator@example.org
//	GNGENOMES_FETCH_API_KEY=...
//	GNGENOMES_LOG_LEVEL=info
//	GNGENOMES_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete GNgenomes configuration.
type Config struct {
	// Fetch contains settings for downloading assembly metadata from the
	// genome archive.
	Fetch FetchConfig `mapstructure:"fetch" yaml:"fetch"`

	// Enrich contains settings for taxonomic name resolution.
	Enrich EnrichConfig `mapstructure:"enrich" yaml:"enrich"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// DataDir is the directory where fetched, enriched and report files
	// are written. Relative paths resolve against the working directory.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Groups is the list of group names to process, as given on the
	// command line. Empty means every group from groups.yaml.
	// It must be set by CLI, there is no default value for it.
	Groups []string

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// FetchConfig contains settings for the genome archive client.
type FetchConfig struct {
	// Email identifies the operator to the archive, as its etiquette
	// requires for scripted access. There is no default; fetching
	// without an email triggers a warning.
	Email string `mapstructure:"email" yaml:"email"`

	// APIKey is an optional archive API key. With a key the archive
	// allows a higher request rate.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BatchSize is the number of assembly ids requested per summary
	// call. The archive caps one call at 500 ids.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// RetMax caps how many assembly ids one search returns.
	RetMax int `mapstructure:"ret_max" yaml:"ret_max"`

	// DelayMs is the pause between consecutive archive calls in
	// milliseconds. Zero disables the delay (only via CLI flag).
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`
}

// EnrichConfig contains settings for taxonomic name resolution.
type EnrichConfig struct {
	// Authority overrides the per-group authority for one run.
	// Valid values: "wfo", "col", "wikidata". Empty means each group
	// uses the authority from groups.yaml.
	// Runtime-only field (per-run override), not persisted.
	Authority string

	// DelayMs is the pause between name resolutions in milliseconds.
	// Zero disables the delay (only via CLI flag).
	DelayMs int `mapstructure:"delay_ms" yaml:"delay_ms"`

	// LookupDelayMs is the pause between consecutive entity lookups
	// while walking a parent chain (wikidata authority).
	LookupDelayMs int `mapstructure:"lookup_delay_ms" yaml:"lookup_delay_ms"`

	// MaxDepth caps how many parent hops a lineage walk may take.
	// It is the only protection against cyclic parent chains.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`

	// TimeoutSec is the HTTP timeout for authority requests in seconds.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Fetch: FetchConfig{
			BatchSize: 100,
			RetMax:    10_000,
			DelayMs:   500,
		},
		Enrich: EnrichConfig{
			DelayMs:       500,
			LookupDelayMs: 200,
			MaxDepth:      20,
			TimeoutSec:    30,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
		DataDir:    "data",
	}

	return res
}
