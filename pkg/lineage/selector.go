package lineage

import "strings"

// DefaultKeywords bias candidate selection towards taxon entities.
// They match the descriptions Wikidata attaches to species items.
var DefaultKeywords = []string{"species", "insect", "beetle", "weevil"}

// CandidateSelector picks the entity to start a walk from. Select is
// called with at least one candidate.
type CandidateSelector interface {
	Select(cands []Candidate) Candidate
}

// FirstSelector picks the first candidate the authority returned.
type FirstSelector struct{}

func (FirstSelector) Select(cands []Candidate) Candidate {
	return cands[0]
}

// KeywordSelector prefers the first candidate whose description
// mentions one of the keywords and falls back to the first candidate.
// Authorities usually order hits by relevance, but a popularity match
// (a film, a town) can outrank the taxon; the keywords skip those.
type KeywordSelector struct {
	Keywords []string
}

// NewKeywordSelector creates a selector for the given keywords, using
// DefaultKeywords when none are given.
func NewKeywordSelector(keywords []string) KeywordSelector {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return KeywordSelector{Keywords: keywords}
}

func (s KeywordSelector) Select(cands []Candidate) Candidate {
	for _, c := range cands {
		desc := strings.ToLower(c.Description)
		for _, kw := range s.Keywords {
			if kw == "" {
				continue
			}
			if strings.Contains(desc, strings.ToLower(kw)) {
				return c
			}
		}
	}
	return cands[0]
}
