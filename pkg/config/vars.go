package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gngenomes"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gngenomes by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gngenomes by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gngenomes/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gngenomes/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// GroupsFilePath returns the full path to the groups.yaml file.
// Returns ~/.config/gngenomes/groups.yaml by default.
func GroupsFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "groups.yaml")
}

// AssembliesFilePath returns the path of a group's fetched assemblies
// file, e.g. data/arecaceae_assemblies.csv.
func (c *Config) AssembliesFilePath(group string) string {
	name := fmt.Sprintf("%s_assemblies.csv", strings.ToLower(group))
	return filepath.Join(c.DataDir, name)
}

// EnrichedFilePath returns the path of a group's taxonomically enriched
// assemblies file, e.g. data/arecaceae_assemblies_enriched.csv.
func (c *Config) EnrichedFilePath(group string) string {
	name := fmt.Sprintf("%s_assemblies_enriched.csv", strings.ToLower(group))
	return filepath.Join(c.DataDir, name)
}

// HigherTaxaFilePath returns the path of a group's higher-taxa listing,
// e.g. data/arecaceae_higher_taxa.txt.
func (c *Config) HigherTaxaFilePath(group string) string {
	name := fmt.Sprintf("%s_higher_taxa.txt", strings.ToLower(group))
	return filepath.Join(c.DataDir, name)
}

// SummaryFilePath returns the path of the narrative statistics summary.
func (c *Config) SummaryFilePath() string {
	return filepath.Join(c.DataDir, "genome_statistics_summary.txt")
}

// StatsJSONFilePath returns the path of the statistics JSON report.
func (c *Config) StatsJSONFilePath() string {
	return filepath.Join(c.DataDir, "genome_statistics.json")
}
