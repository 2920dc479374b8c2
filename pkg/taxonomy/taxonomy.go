// Package taxonomy provides the shared vocabulary for taxonomic
// placements of species names.
//
// Several independent authorities (World Flora Online, Catalogue of
// Life, Wikidata) describe classifications in different shapes. This
// package defines the ranks GNgenomes tracks, the Placement record all
// authority adapters normalize into, and the reducers that fold
// authority responses into placements.
package taxonomy

import "strings"

// Authority identifies a taxonomy source used for name resolution.
type Authority string

const (
	// WFO is the World Flora Online Plant List.
	WFO Authority = "wfo"
	// COL is the Catalogue of Life.
	COL Authority = "col"
	// Wikidata is the Wikidata knowledge base.
	Wikidata Authority = "wikidata"
)

// Authorities returns all supported authorities in their canonical
// order. The order is stable and used for deterministic output.
func Authorities() []Authority {
	return []Authority{WFO, COL, Wikidata}
}

// AuthorityFromString matches a string against the supported
// authorities, case-insensitively.
func AuthorityFromString(s string) (Authority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(WFO):
		return WFO, true
	case string(COL):
		return COL, true
	case string(Wikidata):
		return Wikidata, true
	}
	return "", false
}

// Title returns the human-readable name of the authority for reports.
func (a Authority) Title() string {
	switch a {
	case WFO:
		return "WFO Plant List"
	case COL:
		return "Catalogue of Life"
	case Wikidata:
		return "Wikidata"
	}
	return string(a)
}

// Rank is a taxonomic rank tracked in placements. Authorities return
// many more ranks; everything outside this vocabulary is ignored.
type Rank string

const (
	Family    Rank = "family"
	Subfamily Rank = "subfamily"
	Tribe     Rank = "tribe"
	Subtribe  Rank = "subtribe"
	Genus     Rank = "genus"
)

// Ranks returns the tracked ranks ordered from the highest to the
// lowest.
func Ranks() []Rank {
	return []Rank{Family, Subfamily, Tribe, Subtribe, Genus}
}

// RankFromString matches a rank label against the tracked vocabulary,
// case-insensitively. Labels outside the vocabulary return false and
// are skipped by normalization, never treated as errors.
func RankFromString(s string) (Rank, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Family):
		return Family, true
	case string(Subfamily):
		return Subfamily, true
	case string(Tribe):
		return Tribe, true
	case string(Subtribe):
		return Subtribe, true
	case string(Genus):
		return Genus, true
	}
	return "", false
}
