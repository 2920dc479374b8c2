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
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iocsv"
	"github.com/gnames/gngenomes/internal/iofs"
	"github.com/gnames/gngenomes/internal/ioncbi"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFetchCmd() *cobra.Command {
	var (
		groupNames []string
		retMax     int
		email      string
		apiKey     string
	)

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download genome assembly metadata from NCBI",
		Long: `Download genome assembly metadata from the NCBI assembly database.

This command:
  1. Reads groups.yaml to discover the taxonomic groups to survey
  2. Searches NCBI E-utilities for the latest assemblies of each group
  3. Downloads assembly summaries in batches
  4. Derives species binomials from organism names where NCBI
     reports none
  5. Saves one CSV file per group into the data directory

NCBI etiquette asks scripted clients for a contact email; requests
with an API key get a higher rate limit.

Groups configured in: ~/.config/gngenomes/groups.yaml

Examples:
  # Fetch all groups from groups.yaml
  gngenomes fetch

  # Fetch specific groups only
  gngenomes fetch -g Arecaceae
  gngenomes fetch -g palms,weevils

  # Identify yourself to NCBI and cap the search
  gngenomes fetch --email curator@example.org --retmax 5000`,
		Aliases: []string{"download"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runFetch(cmd, groupNames, retMax, email, apiKey)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	fetchCmd.Flags().StringSliceVarP(
		&groupNames, "groups", "g", []string{},
		"group names or labels to fetch (empty = all)",
	)
	fetchCmd.Flags().IntVar(
		&retMax, "retmax", 0,
		"maximum number of assembly ids per search",
	)
	fetchCmd.Flags().StringVar(
		&email, "email", "",
		"contact email sent to NCBI",
	)
	fetchCmd.Flags().StringVar(
		&apiKey, "api-key", "",
		"NCBI API key for a higher rate limit",
	)

	return fetchCmd
}

func runFetch(
	cmd *cobra.Command,
	groupNames []string,
	retMax int,
	email string,
	apiKey string,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var fetchOpts []config.Option

	if cmd.Flags().Changed("retmax") {
		fetchOpts = append(fetchOpts, config.OptFetchRetMax(retMax))
	}

	if cmd.Flags().Changed("email") {
		fetchOpts = append(fetchOpts, config.OptFetchEmail(email))
	}

	if cmd.Flags().Changed("api-key") {
		fetchOpts = append(fetchOpts, config.OptFetchAPIKey(apiKey))
	}

	// Apply fetch-specific options to config
	if len(fetchOpts) > 0 {
		cfg.Update(fetchOpts)
	}

	grps, err := loadGroups(groupNames)
	if err != nil {
		return err
	}

	if err = iofs.EnsureDataDir(cfg.DataDir); err != nil {
		return err
	}

	pool := parserpool.NewPool(cfg.JobsNumber)
	defer pool.Close()
	fetcher := ioncbi.New(cfg, pool)

	gn.Info("Starting assembly metadata download from NCBI...")
	success, failed, err := forEachGroup(ctx, "Fetch", grps,
		func(ctx context.Context, grp groups.GroupConfig) error {
			return fetchGroup(ctx, fetcher, grp)
		},
	)
	if err != nil {
		return err
	}

	if failed > 0 && success == 0 {
		return ioncbi.AllGroupsFailedError(failed)
	}

	gn.Info(`Next steps:
	 - Run '<em>gngenomes enrich</em>' to resolve species names
	 - Run '<em>gngenomes stats</em>' to build coverage reports
`)

	return nil
}

func fetchGroup(
	ctx context.Context,
	fetcher gngenomes.Fetcher,
	grp groups.GroupConfig,
) error {
	recs, err := fetcher.Fetch(ctx, grp)
	if err != nil {
		return err
	}

	outPath := cfg.AssembliesFilePath(grp.Name)
	if err = iocsv.WriteRecords(outPath, recs); err != nil {
		return err
	}

	gn.Info("Saved %s assemblies to <em>%s</em>",
		humanize.Comma(int64(len(recs))), outPath)
	return nil
}
