/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/internal/iologger"
	app "github.com/gnames/gngenomes/pkg"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd assembles the root command together with all subcommands.
// Extracted as a function to facilitate testing and to keep command
// instances independent.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf(
			"version: %s\nbuild:   %s", app.Version, app.Build,
		),
		Use:   "gngenomes",
		Short: "GNgenomes surveys genome assemblies of taxonomic groups",
		Long: `GNgenomes is a CLI tool for surveying how well a taxonomic group is
covered by sequenced genomes. It downloads genome assembly metadata
from NCBI, resolves species names against a taxonomic authority (WFO
Plant List, Catalogue of Life or Wikidata), and reports how much of the
group's described diversity is represented by high-quality assemblies.

The tool provides three phases:
  - fetch:  download assembly metadata from NCBI
  - enrich: resolve species names to taxonomic placements
  - stats:  aggregate coverage statistics and write reports

Groups are configured in: ~/.config/gngenomes/groups.yaml
Two reference groups ship by default: Arecaceae (palms) and
Curculionidae (weevils).

Configuration precedence (highest to lowest):
  1. CLI flags (--retmax, --authority, etc.)
  2. Environment variables (GNGENOMES_*)
  3. Config file (~/.config/gngenomes/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (fetch.email → GNGENOMES_FETCH_EMAIL).

  Examples:
    GNGENOMES_FETCH_EMAIL        contact email sent to NCBI
    GNGENOMES_FETCH_API_KEY      NCBI API key for a higher rate limit
    GNGENOMES_LOG_LEVEL          log level (debug/info/warn/error)
    GNGENOMES_JOBS_NUMBER        number of concurrent workers
    GNGENOMES_DATA_DIR           directory for data and report files`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gngenomes version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gngenomes")

	rootCmd.AddCommand(getFetchCmd())
	rootCmd.AddCommand(getEnrichCmd())
	rootCmd.AddCommand(getStatsCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureGroupsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, appending to the log
	// file the default logger already started.
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration, now that HomeDir and the user's settings are known.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNGENOMES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Fetch configuration
	v.BindEnv("fetch.email", "FETCH_EMAIL")
	v.BindEnv("fetch.api_key", "FETCH_API_KEY")
	v.BindEnv("fetch.batch_size", "FETCH_BATCH_SIZE")
	v.BindEnv("fetch.ret_max", "FETCH_RET_MAX")
	v.BindEnv("fetch.delay_ms", "FETCH_DELAY_MS")

	// Enrich configuration
	v.BindEnv("enrich.delay_ms", "ENRICH_DELAY_MS")
	v.BindEnv("enrich.lookup_delay_ms", "ENRICH_LOOKUP_DELAY_MS")
	v.BindEnv("enrich.max_depth", "ENRICH_MAX_DEPTH")
	v.BindEnv("enrich.timeout_sec", "ENRICH_TIMEOUT_SEC")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")
	v.BindEnv("data_dir", "DATA_DIR")

	v.AutomaticEnv()
}
