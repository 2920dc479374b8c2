package gngenomes

import (
	"context"

	"github.com/gnames/gngenomes/pkg/groups"
)

// Enricher defines the interface for annotating fetched assembly records
// with taxonomic placements from an authority.
// It reads the assemblies file a fetch produced, resolves every distinct
// species name, and writes the enriched table together with a listing of
// the higher taxa that were encountered.
// Config is provided during construction via New.
type Enricher interface {
	// Enrich resolves the species names of one group and saves the
	// results. Records whose name the authority does not know keep an
	// empty placement; their names are reported, not failed on.
	Enrich(ctx context.Context, grp groups.GroupConfig) error
}

// Reporter defines the interface for computing genome coverage statistics
// over enriched assembly records.
// It aggregates per-group counts, compares them against described
// diversity baselines, and renders a narrative summary as well as a
// machine-readable export.
// Config is provided during construction via New.
type Reporter interface {
	// Report builds the statistics for the given groups and writes the
	// summary and JSON files. Groups whose enriched file is missing are
	// skipped with a warning; an error is returned only when no group
	// could be reported on.
	Report(ctx context.Context, grps []groups.GroupConfig) error
}
