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
	"github.com/gnames/gngenomes/internal/ioreport"
	"github.com/spf13/cobra"
)

// getStatsCmd returns the stats command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getStatsCmd() *cobra.Command {
	var (
		groupNames []string
		jsonOnly   bool
	)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate genome coverage statistics",
		Long: `Compute coverage statistics over enriched assembly records.

This command:
  1. Reads the enriched CSV of each group
  2. Counts assemblies, species, genera and higher taxa, split into
     all vs high-quality (chromosome-level or scaffold N50 > 10 Mb)
  3. Relates the counts to the described-diversity baselines from
     groups.yaml
  4. Writes a narrative text summary and a JSON export into the data
     directory, and prints the narrative

Groups without an enriched file are skipped with a warning; the
command fails only when no group can be reported on. Statistics are
recomputed from the enriched records on every run.

Examples:
  # Report on all groups
  gngenomes stats

  # Report on one group only
  gngenomes stats -g weevils

  # Skip the narrative, write the JSON export alone
  gngenomes stats --json-only`,
		Aliases: []string{"report"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runStats(cmd, groupNames, jsonOnly)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	statsCmd.Flags().StringSliceVarP(
		&groupNames, "groups", "g", []string{},
		"group names or labels to report on (empty = all)",
	)
	statsCmd.Flags().BoolVar(
		&jsonOnly, "json-only", false,
		"write only the JSON export, skip the narrative summary",
	)

	return statsCmd
}

func runStats(
	cmd *cobra.Command,
	groupNames []string,
	jsonOnly bool,
) error {
	ctx := context.Background()

	grps, err := loadGroups(groupNames)
	if err != nil {
		return err
	}

	reporter := ioreport.New(cfg, jsonOnly)

	gn.Info("Aggregating genome coverage statistics...")
	return reporter.Report(ctx, grps)
}
