package stats

import (
	"math"

	"github.com/gnames/gngenomes/pkg/groups"
)

// Coverage expresses group statistics as shares of described diversity.
// Values are percentages rounded to two decimals.
type Coverage struct {
	// HQSharePct is the high-quality share of all assemblies.
	HQSharePct float64 `json:"hq_share_pct"`

	// SpeciesPct, GeneraPct and SubfamiliesPct relate high-quality
	// counts to the group's diversity baselines.
	SpeciesPct     float64 `json:"species_pct"`
	GeneraPct      float64 `json:"genera_pct"`
	SubfamiliesPct float64 `json:"subfamilies_pct"`

	// FocusTribe holds focus-tribe coverage when the group and its
	// statistics both carry one.
	FocusTribe *TribeCoverage `json:"focus_tribe,omitempty"`
}

// TribeCoverage expresses the subtribe coverage of a focus tribe.
type TribeCoverage struct {
	Name         string  `json:"name"`
	SubtribesPct float64 `json:"subtribes_pct"`
}

// NewCoverage computes the coverage percentages of one group. It fails
// when a baseline it has to divide by is not positive.
//
// A group with no assemblies at all gets a zero high-quality share
// rather than an error; an empty fetch is a data condition, not a
// configuration one.
func NewCoverage(grp groups.GroupConfig, st GroupStats) (Coverage, error) {
	div := grp.Diversity
	if div.Species <= 0 {
		return Coverage{}, BaselineError(grp.Name, "diversity.species", div.Species)
	}
	if div.Genera <= 0 {
		return Coverage{}, BaselineError(grp.Name, "diversity.genera", div.Genera)
	}
	if div.Subfamilies <= 0 {
		return Coverage{}, BaselineError(
			grp.Name, "diversity.subfamilies", div.Subfamilies,
		)
	}

	var res Coverage
	if st.TotalAssemblies > 0 {
		res.HQSharePct = pct(st.HQAssemblies, st.TotalAssemblies)
	}
	res.SpeciesPct = pct(st.HQSpecies, div.Species)
	res.GeneraPct = pct(st.HQGenera, div.Genera)
	res.SubfamiliesPct = pct(st.Subfamilies, div.Subfamilies)

	if grp.FocusTribe != nil && st.FocusTribe != nil {
		if grp.FocusTribe.Subtribes <= 0 {
			return Coverage{}, BaselineError(
				grp.Name, "focus_tribe.subtribes", grp.FocusTribe.Subtribes,
			)
		}
		res.FocusTribe = &TribeCoverage{
			Name:         grp.FocusTribe.Name,
			SubtribesPct: pct(st.FocusTribe.Subtribes, grp.FocusTribe.Subtribes),
		}
	}

	return res, nil
}

func pct(part, whole int) float64 {
	res := float64(part) / float64(whole) * 100
	return math.Round(res*100) / 100
}
