// Package ioenrich runs the taxonomic enrichment of fetched assembly
// records: it reads a group's assemblies file, resolves every species
// name against the group's authority and saves the enriched table
// together with a listing of the higher taxa that turned up.
package ioenrich

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gngenomes/internal/iocol"
	"github.com/gnames/gngenomes/internal/iocsv"
	"github.com/gnames/gngenomes/internal/iowfo"
	"github.com/gnames/gngenomes/internal/iowikidata"
	"github.com/gnames/gngenomes/pkg/config"
	"github.com/gnames/gngenomes/pkg/enrich"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

type ioenrich struct {
	cfg *config.Config

	// resolverFor builds the resolver for a group and authority; tests
	// substitute it to enrich without the network.
	resolverFor func(
		grp groups.GroupConfig, auth taxonomy.Authority,
	) gngenomes.Resolver
}

// New creates a gngenomes.Enricher that resolves names over the
// network against the WFO Plant List, the Catalogue of Life or
// Wikidata, whichever the group or the runtime override picks.
func New(cfg *config.Config) gngenomes.Enricher {
	res := ioenrich{cfg: cfg}
	res.resolverFor = res.newResolver
	return &res
}

func (e *ioenrich) newResolver(
	grp groups.GroupConfig, auth taxonomy.Authority,
) gngenomes.Resolver {
	switch auth {
	case taxonomy.WFO:
		return iowfo.New(e.cfg)
	case taxonomy.Wikidata:
		return iowikidata.New(e.cfg, grp.SearchHints)
	default:
		return iocol.New(e.cfg)
	}
}

func (e *ioenrich) Enrich(
	ctx context.Context, grp groups.GroupConfig,
) error {
	inPath := e.cfg.AssembliesFilePath(grp.Name)
	recs, err := iocsv.ReadRecords(inPath)
	if err != nil {
		return InputError(grp.Name, inPath, err)
	}
	if len(recs) == 0 {
		slog.Warn("No assembly records to enrich",
			"group", grp.Name, "file", inPath)
		return nil
	}

	auth := grp.ResolveAuthority(e.cfg.Enrich.Authority)
	slog.Info("Resolving species names",
		"group", grp.Name,
		"authority", auth,
		"records", len(recs),
	)
	resolver := e.resolverFor(grp, auth)

	bar := pb.Full.Start(len(recs))
	bar.Set("prefix", "Resolving names: ")
	bar.Set(pb.CleanOnFinish, true)
	recs, failed, err := enrich.Enrich(ctx, recs, resolver, func() {
		bar.Increment()
	})
	bar.Finish()
	if err != nil {
		return err
	}

	outPath := e.cfg.EnrichedFilePath(grp.Name)
	if err = iocsv.WriteRecords(outPath, recs); err != nil {
		return OutputError(grp.Name, outPath, err)
	}
	slog.Info("Saved enriched records",
		"group", grp.Name,
		"file", outPath,
		"count", len(recs),
	)

	taxaPath := e.cfg.HigherTaxaFilePath(grp.Name)
	if err = writeHigherTaxa(taxaPath, grp, auth, recs); err != nil {
		return err
	}

	reportFailed(grp, failed)
	return nil
}

// reportFailed prints the species names that resolved to nothing, each
// once, so a user can fix or ignore them.
func reportFailed(grp groups.GroupConfig, failed []string) {
	if len(failed) == 0 {
		return
	}

	seen := make(map[string]bool, len(failed))
	var names []string
	for _, name := range failed {
		if name == "" {
			name = "(no species name)"
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	fmt.Fprintf(&b,
		"<em>No taxonomy found for %d names in %s:</em>\n",
		len(names), grp.Name,
	)
	for _, name := range names {
		fmt.Fprintf(&b, "  - %s\n", name)
	}
	gn.Info(b.String())
}
