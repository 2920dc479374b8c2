package iocol

import "github.com/gnames/gngenomes/pkg/taxonomy"

type searchResult struct {
	Total  int           `json:"total"`
	Result []searchEntry `json:"result"`
}

// searchEntry is one search hit. Depending on the API version the
// usage id sits on the wrapper or on the nested usage object, so both
// are read.
type searchEntry struct {
	ID    string       `json:"id"`
	Usage *nestedUsage `json:"usage"`
}

type nestedUsage struct {
	ID string `json:"id"`
}

func (e searchEntry) usageID() string {
	if e.ID != "" {
		return e.ID
	}
	if e.Usage != nil {
		return e.Usage.ID
	}
	return ""
}

// usageDetail is the name-usage detail response. Classification can be
// absent; a usage without one still resolves, just placeless.
type usageDetail struct {
	Name           usageName     `json:"name"`
	Status         string        `json:"status"`
	Classification []rankedTaxon `json:"classification"`
}

type usageName struct {
	ScientificName string `json:"scientificName"`
}

type rankedTaxon struct {
	Rank string `json:"rank"`
	Name string `json:"name"`
}

func (d usageDetail) rankedNames() []taxonomy.RankedName {
	res := make([]taxonomy.RankedName, len(d.Classification))
	for i, t := range d.Classification {
		res[i] = taxonomy.RankedName{Rank: t.Rank, Name: t.Name}
	}
	return res
}
