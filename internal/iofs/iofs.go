package iofs

import (
	"os"

	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/templates"
)

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDataDir creates the directory for data and report files when
// it does not exist yet.
func EnsureDataDir(dataDir string) error {
	return touchDir(dataDir)
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureGroupsFile(homeDir string) error {
	groupsPath := config.GroupsFilePath(homeDir)

	// Check if groups file already exists
	if _, err := os.Stat(groupsPath); err == nil {
		return nil
	}

	// Write embedded groups.yaml to the config directory
	if err := os.WriteFile(groupsPath, []byte(templates.GroupsYAML), 0644); err != nil {
		return CopyFileError(groupsPath, err)
	}

	return nil
}
