// Package ioreport computes coverage statistics over enriched assembly
// records and writes the two report files: a narrative text summary and
// a machine-readable JSON export.
package ioreport

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iocsv"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/stats"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

type ioreport struct {
	cfg *config.Config

	// jsonOnly skips the narrative summary and writes the JSON export
	// alone.
	jsonOnly bool
}

// groupReport carries one group's aggregated numbers between the
// statistics run and the two renderers.
type groupReport struct {
	Group     groups.GroupConfig
	Authority taxonomy.Authority
	Stats     stats.GroupStats
	Coverage  stats.Coverage
}

// New creates a gngenomes.Reporter that reads enriched records of each
// group from the data directory and writes the summary files there.
func New(cfg *config.Config, jsonOnly bool) gngenomes.Reporter {
	return &ioreport{cfg: cfg, jsonOnly: jsonOnly}
}

func (r *ioreport) Report(
	ctx context.Context, grps []groups.GroupConfig,
) error {
	var reps []groupReport
	for _, grp := range grps {
		if err := ctx.Err(); err != nil {
			return err
		}

		rep, ok, err := r.groupStats(grp)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		reps = append(reps, rep)
	}

	if len(reps) == 0 {
		return NoGroupsError(len(grps))
	}

	if !r.jsonOnly {
		text, err := renderSummary(reps)
		if err != nil {
			return err
		}
		sumPath := r.cfg.SummaryFilePath()
		if err = os.WriteFile(sumPath, []byte(text), 0644); err != nil {
			return WriteError(sumPath, err)
		}
		slog.Info("Saved statistics summary",
			"file", sumPath, "groups", len(reps))

		// The narrative is the result a user asked for, print it as is.
		fmt.Println(text)
	}

	jsonPath := r.cfg.StatsJSONFilePath()
	if err := writeJSON(jsonPath, reps); err != nil {
		return err
	}
	slog.Info("Saved statistics JSON",
		"file", jsonPath, "groups", len(reps))
	gn.Info("Statistics saved to <em>%s</em>", jsonPath)

	return nil
}

// groupStats aggregates one group. A missing or unreadable enriched
// file skips the group with a warning; a bad diversity baseline is a
// configuration mistake and fails the whole report.
func (r *ioreport) groupStats(
	grp groups.GroupConfig,
) (groupReport, bool, error) {
	path := r.cfg.EnrichedFilePath(grp.Name)
	recs, err := iocsv.ReadRecords(path)
	if err != nil {
		slog.Warn("Skipping group without enriched records",
			"group", grp.Name, "file", path, "error", err)
		gn.Warn(
			"No enriched records for <em>%s</em>, run <em>enrich</em> first",
			grp.Name,
		)
		return groupReport{}, false, nil
	}

	auth := grp.ResolveAuthority(r.cfg.Enrich.Authority)
	st := stats.Aggregate(grp, auth, recs)
	cov, err := stats.NewCoverage(grp, st)
	if err != nil {
		return groupReport{}, false, err
	}

	slog.Info("Aggregated group statistics",
		"group", grp.Name,
		"authority", auth,
		"assemblies", st.TotalAssemblies,
		"hq_assemblies", st.HQAssemblies,
	)
	return groupReport{
		Group:     grp,
		Authority: auth,
		Stats:     st,
		Coverage:  cov,
	}, true, nil
}
