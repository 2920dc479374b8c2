package gngenomes

import (
	"context"

	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// Fetcher defines the interface for collecting genome assembly metadata of
// a taxonomic group from a genome archive.
// A fetch always asks for the latest assembly versions only, so reruns
// reflect the current state of the archive instead of accumulating
// superseded assemblies.
// Config is provided during construction via New.
type Fetcher interface {
	// Fetch returns one record per assembly known for the group.
	// Records come back in the order the archive returned them.
	// Species names are taken from the archive metadata when present,
	// with a fallback to the first two words of the organism name.
	Fetch(ctx context.Context, grp groups.GroupConfig) ([]assembly.Record, error)
}

// Resolver defines the interface for resolving a species name against one
// taxonomic authority.
// Implementations query the authority over the network; they pace their
// requests so that reruns over thousands of names stay polite.
// A name the authority does not know is not an error: it yields a
// placement for which Found reports false.
type Resolver interface {
	// Authority reports which authority this resolver queries. It is
	// used to key resolved placements on assembly records and to name
	// columns in exported files.
	Authority() taxonomy.Authority

	// Resolve finds the accepted placement of a species name.
	// The name must be a canonical binomial ("Genus epithet");
	// callers are expected to reduce messier strings before resolving.
	// An error is returned only for transport or decoding failures.
	Resolve(ctx context.Context, name string) (taxonomy.Placement, error)
}
