package iowfo

import "github.com/gnames/gngenomes/pkg/taxonomy"

// gqlRequest is the body of a GraphQL call.
type gqlRequest struct {
	Query     string       `json:"query"`
	Variables gqlVariables `json:"variables"`
}

type gqlVariables struct {
	ScientificName string `json:"scientificName"`
}

type gqlResponse struct {
	Data   *gqlData   `json:"data"`
	Errors []gqlError `json:"errors"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlData struct {
	TaxonNameMatch *nameMatch `json:"taxonNameMatch"`
}

// nameMatch is one taxonNameMatch result. The placement arrives keyed
// by rank label, which keeps the decoder independent of the exact rank
// list the query asks for.
type nameMatch struct {
	Name              *wfoName            `json:"name"`
	AcceptedName      *wfoName            `json:"acceptedName"`
	AcceptedPlacement map[string]*wfoName `json:"acceptedPlacement"`
}

type wfoName struct {
	FullNameStringPlain string `json:"fullNameStringPlain"`
	Rank                string `json:"rank"`
	ID                  string `json:"id"`
}

// placement converts a match into the shared placement record. The
// accepted name falls back to the queried name when WFO reports none.
// Rank labels outside the tracked vocabulary are skipped.
func (m *nameMatch) placement(queried string) taxonomy.Placement {
	res := taxonomy.Placement{AcceptedName: queried}

	if m.AcceptedName != nil && m.AcceptedName.FullNameStringPlain != "" {
		res.AcceptedName = m.AcceptedName.FullNameStringPlain
		res.RecordID = m.AcceptedName.ID
	}

	for label, wn := range m.AcceptedPlacement {
		if wn == nil || wn.FullNameStringPlain == "" {
			continue
		}
		if rank, ok := taxonomy.RankFromString(label); ok {
			res.SetRankValue(rank, wn.FullNameStringPlain)
		}
	}
	return res
}
