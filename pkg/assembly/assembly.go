// Package assembly defines genome assembly records and their quality
// classification.
package assembly

import (
	"strconv"
	"strings"

	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// HighQualityN50 is the scaffold N50 threshold, in base pairs, above
// which an assembly counts as high-quality even when it is not
// assembled to chromosomes.
const HighQualityN50 = 10_000_000

// Record holds the metadata of one genome assembly, as reported by
// NCBI, together with the taxonomy placements attached during
// enrichment.
//
// ScaffoldN50 and ContigN50 are kept as decimal strings because
// records round-trip through CSV files and malformed values must
// degrade gracefully instead of failing a whole file.
type Record struct {
	// Accession is the NCBI assembly accession and the identity of
	// the record.
	Accession string

	// Organism is the full organism name, possibly with strain or
	// cultivar information.
	Organism string

	// SpeciesName is the species binomial. It can be empty when NCBI
	// does not report one and none can be derived from Organism.
	SpeciesName string

	Strain         string
	AssemblyName   string
	AssemblyLevel  string
	ScaffoldN50    string
	ContigN50      string
	SubmissionDate string
	SequencingTech string
	BioSample      string
	TaxID          string

	// Placements holds one taxonomy placement per authority the
	// record was enriched with. Placements of different authorities
	// are never merged.
	Placements map[taxonomy.Authority]taxonomy.Placement
}

// HighQuality reports whether the assembly counts as high-quality:
// chromosome-level or complete assemblies qualify by level, others by
// scaffold N50 above HighQualityN50. A missing or malformed N50 means
// no evidence of quality, not an error.
func (r Record) HighQuality() bool {
	level := strings.ToLower(r.AssemblyLevel)
	if strings.Contains(level, "chromosome") || level == "complete genome" {
		return true
	}

	n50, err := strconv.Atoi(strings.TrimSpace(r.ScaffoldN50))
	if err != nil {
		return false
	}
	return n50 > HighQualityN50
}

// Placement returns the placement attached for the authority.
func (r Record) Placement(auth taxonomy.Authority) (taxonomy.Placement, bool) {
	p, ok := r.Placements[auth]
	return p, ok
}

// SetPlacement attaches a placement under the authority's key, leaving
// placements of other authorities untouched.
func (r *Record) SetPlacement(auth taxonomy.Authority, p taxonomy.Placement) {
	if r.Placements == nil {
		r.Placements = make(map[taxonomy.Authority]taxonomy.Placement)
	}
	r.Placements[auth] = p
}
