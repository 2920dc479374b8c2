package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptFetchEmail sets the operator email sent with archive requests.
func OptFetchEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Fetch Email", s) {
			c.Fetch.Email = s
		}
	}
}

// OptFetchAPIKey sets the archive API key.
func OptFetchAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Fetch API Key", s) {
			c.Fetch.APIKey = s
		}
	}
}

// OptFetchBatchSize sets the number of assembly ids per summary request.
func OptFetchBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Batch Size", i) {
			c.Fetch.BatchSize = i
		}
	}
}

// OptFetchRetMax caps the number of assembly ids one search returns.
func OptFetchRetMax(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch RetMax", i) {
			c.Fetch.RetMax = i
		}
	}
}

// OptFetchDelayMs sets the pause between archive calls in milliseconds.
// Zero is allowed and disables the delay.
func OptFetchDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("Fetch Delay", i) {
			c.Fetch.DelayMs = i
		}
	}
}

// OptEnrichAuthority overrides the per-group taxonomic authority for one run.
// Valid values: "wfo", "col", "wikidata".
// Runtime-only field - not in ToOptions().
func OptEnrichAuthority(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Enrich.Authority", s) {
			c.Enrich.Authority = s
		}
	}
}

// OptEnrichDelayMs sets the pause between name resolutions in milliseconds.
// Zero is allowed and disables the delay.
func OptEnrichDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("Enrich Delay", i) {
			c.Enrich.DelayMs = i
		}
	}
}

// OptEnrichLookupDelayMs sets the pause between entity lookups during a
// lineage walk. Zero is allowed and disables the delay.
func OptEnrichLookupDelayMs(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("Enrich Lookup Delay", i) {
			c.Enrich.LookupDelayMs = i
		}
	}
}

// OptEnrichMaxDepth caps parent hops during a lineage walk.
func OptEnrichMaxDepth(i int) Option {
	return func(c *Config) {
		if isValidInt("Enrich Max Depth", i) {
			c.Enrich.MaxDepth = i
		}
	}
}

// OptEnrichTimeoutSec sets the HTTP timeout for authority requests.
func OptEnrichTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Enrich Timeout", i) {
			c.Enrich.TimeoutSec = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdin", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptDataDir sets the directory for fetched, enriched and report files.
func OptDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Data Directory", s) {
			c.DataDir = s
		}
	}
}

// OptGroups sets the list of group names to process.
// Empty slice means process all groups from groups.yaml.
// Runtime-only field - not in ToOptions().
func OptGroups(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Groups = ss
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
