package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, Groups, Enrich.Authority).
// Used for round-tripping config.yaml ↔ Config conversions.
// Zero delays are indistinguishable from unset fields here, so they do
// not round-trip; disabling delays is a per-run CLI decision.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Fetch.Email
	if s != "" {
		res = append(res, OptFetchEmail(s))
	}
	s = c.Fetch.APIKey
	if s != "" {
		res = append(res, OptFetchAPIKey(s))
	}
	i = c.Fetch.BatchSize
	if i > 0 {
		res = append(res, OptFetchBatchSize(i))
	}
	i = c.Fetch.RetMax
	if i > 0 {
		res = append(res, OptFetchRetMax(i))
	}
	i = c.Fetch.DelayMs
	if i > 0 {
		res = append(res, OptFetchDelayMs(i))
	}

	i = c.Enrich.DelayMs
	if i > 0 {
		res = append(res, OptEnrichDelayMs(i))
	}
	i = c.Enrich.LookupDelayMs
	if i > 0 {
		res = append(res, OptEnrichLookupDelayMs(i))
	}
	i = c.Enrich.MaxDepth
	if i > 0 {
		res = append(res, OptEnrichMaxDepth(i))
	}
	i = c.Enrich.TimeoutSec
	if i > 0 {
		res = append(res, OptEnrichTimeoutSec(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	s = c.DataDir
	if s != "" {
		res = append(res, OptDataDir(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegInt(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Enrich.Authority": {"wfo": s, "col": s, "wikidata": s},
		"Log.Level":        {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":       {"json": s, "text": s, "tint": s},
		"Log.Destination":  {"file": s, "stdin": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
