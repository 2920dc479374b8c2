package iogroups

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/groups"
	"gopkg.in/yaml.v3"
)

type iogroups struct {
	cfg *config.Config
}

// New creates a groups.Groups backed by the groups.yaml file in the
// user's config directory.
func New(cfg *config.Config) groups.Groups {
	res := iogroups{cfg: cfg}
	return &res
}

func (g *iogroups) Load() (*groups.GroupsConfig, error) {
	groupsPath := config.GroupsFilePath(g.cfg.HomeDir)
	groupsConfig, err := loadGroupsConfig(groupsPath)
	if err != nil {
		return nil, GroupsConfigError(groupsPath, err)
	}

	for _, w := range groupsConfig.Warnings {
		slog.Warn("Ignoring invalid group setting",
			"group", w.Group,
			"field", w.Field,
			"reason", w.Message,
			"suggestion", w.Suggestion,
		)
	}

	return groupsConfig, nil
}

// loadGroupsConfig loads the taxonomic groups configuration from a YAML file.
func loadGroupsConfig(path string) (*groups.GroupsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read groups config file: %w", err)
	}

	var cfg groups.GroupsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse groups config: %w", err)
	}

	// Validate and process configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
