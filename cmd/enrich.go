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

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/ioenrich"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/spf13/cobra"
)

// getEnrichCmd returns the enrich command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getEnrichCmd() *cobra.Command {
	var (
		groupNames []string
		authority  string
		noDelay    bool
	)

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "Resolve species names to taxonomic placements",
		Long: `Annotate fetched assembly records with taxonomic placements.

This command:
  1. Reads the assemblies CSV a fetch produced for each group
  2. Resolves every distinct species name against the group's
     taxonomic authority:
     - wfo:      WFO Plant List (GraphQL)
     - col:      Catalogue of Life (REST)
     - wikidata: Wikidata entity search plus a parent-chain walk
  3. Attaches accepted name, family, subfamily, tribe, subtribe and
     genus to every record
  4. Saves the enriched CSV and a listing of the higher taxa that
     turned up

Names the authority does not know keep an empty placement and are
reported at the end; they do not fail the run. Every resolution
pauses between requests; --no-delay disables the pauses for runs
against local or mocked services.

Examples:
  # Enrich all groups with their configured authorities
  gngenomes enrich

  # Enrich one group only
  gngenomes enrich -g Arecaceae

  # Override the authority for one run
  gngenomes enrich -g palms -a wikidata`,
		Aliases: []string{"resolve"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runEnrich(cmd, groupNames, authority, noDelay)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	enrichCmd.Flags().StringSliceVarP(
		&groupNames, "groups", "g", []string{},
		"group names or labels to enrich (empty = all)",
	)
	enrichCmd.Flags().StringVarP(
		&authority, "authority", "a", "",
		"override authority: wfo, col or wikidata",
	)
	enrichCmd.Flags().BoolVar(
		&noDelay, "no-delay", false,
		"disable pauses between authority requests",
	)

	return enrichCmd
}

func runEnrich(
	cmd *cobra.Command,
	groupNames []string,
	authority string,
	noDelay bool,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var enrichOpts []config.Option

	if cmd.Flags().Changed("authority") {
		enrichOpts = append(enrichOpts, config.OptEnrichAuthority(authority))
	}

	if noDelay {
		enrichOpts = append(enrichOpts,
			config.OptEnrichDelayMs(0),
			config.OptEnrichLookupDelayMs(0),
		)
	}

	// Apply enrich-specific options to config
	if len(enrichOpts) > 0 {
		cfg.Update(enrichOpts)
	}

	grps, err := loadGroups(groupNames)
	if err != nil {
		return err
	}

	enricher := ioenrich.New(cfg)

	gn.Info("Starting taxonomic name resolution...")
	success, failed, err := forEachGroup(
		ctx, "Enrichment", grps, enricher.Enrich,
	)
	if err != nil {
		return err
	}

	if failed > 0 && success == 0 {
		return ioenrich.AllGroupsFailedError(failed)
	}

	gn.Info(`Next steps:
	 - Run '<em>gngenomes stats</em>' to build coverage reports
`)

	return nil
}
