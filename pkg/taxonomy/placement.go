package taxonomy

// Placement is the result of resolving one species name against one
// authority. Rank fields that the authority did not provide stay
// empty.
//
// A placement is either a match, with AcceptedName set to the
// authority's accepted name for the taxon, or a not-found result,
// where all rank fields are empty and AcceptedName echoes the queried
// name back.
type Placement struct {
	// AcceptedName is the name the authority accepts for the taxon.
	AcceptedName string

	Family    string
	Subfamily string
	Tribe     string
	Subtribe  string
	Genus     string

	// Status is the taxonomic status reported by the authority, if
	// any (for example "accepted" or "synonym").
	Status string

	// RecordID is the authority-local identifier of the matched
	// record: a Wikidata entity ID, a Catalogue of Life usage ID.
	RecordID string
}

// NotFound returns the placement used when an authority has no match
// for a name. The queried name is kept as the accepted name so that
// downstream consumers never deal with nameless records.
func NotFound(name string) Placement {
	return Placement{AcceptedName: name}
}

// Found reports whether the placement carries any data beyond echoing
// the queried name back.
func (p Placement) Found() bool {
	for _, r := range Ranks() {
		if p.RankValue(r) != "" {
			return true
		}
	}
	return p.Status != "" || p.RecordID != ""
}

// RankValue returns the name the placement holds at the given rank.
func (p Placement) RankValue(r Rank) string {
	switch r {
	case Family:
		return p.Family
	case Subfamily:
		return p.Subfamily
	case Tribe:
		return p.Tribe
	case Subtribe:
		return p.Subtribe
	case Genus:
		return p.Genus
	}
	return ""
}

// SetRankValue stores a name at the given rank. Ranks outside the
// vocabulary are ignored.
func (p *Placement) SetRankValue(r Rank, name string) {
	switch r {
	case Family:
		p.Family = name
	case Subfamily:
		p.Subfamily = name
	case Tribe:
		p.Tribe = name
	case Subtribe:
		p.Subtribe = name
	case Genus:
		p.Genus = name
	}
}
