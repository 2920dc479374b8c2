// Package stats aggregates assembly records into per-group statistics.
//
// Statistics are derived values, recomputed on every run from the
// enriched records: assembly and species counts split into all vs
// high-quality, unique genera, and the higher taxa covered by
// high-quality assemblies. Coverage percentages relate those counts to
// the described-diversity baselines from groups.yaml.
package stats

import (
	"slices"
	"strings"

	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// GroupStats summarizes the assembly records of one taxon group.
// List fields are sorted and never nil, so they serialize as arrays.
type GroupStats struct {
	TotalAssemblies int `json:"total_assemblies"`
	HQAssemblies    int `json:"hq_assemblies"`
	AllSpecies      int `json:"all_species"`
	HQSpecies       int `json:"hq_species"`
	AllGenera       int `json:"all_genera"`
	HQGenera        int `json:"hq_genera"`

	// Higher taxa are counted over high-quality assemblies only.
	Subfamilies int `json:"subfamilies"`
	Tribes      int `json:"tribes"`
	Subtribes   int `json:"subtribes"`

	SubfamiliesList []string `json:"subfamilies_list"`
	TribesList      []string `json:"tribes_list"`
	SubtribesList   []string `json:"subtribes_list"`

	// FocusTribe breaks out one tribe when the group configures it.
	FocusTribe *TribeStats `json:"focus_tribe,omitempty"`
}

// TribeStats summarizes the high-quality assemblies of one tribe.
type TribeStats struct {
	Name          string   `json:"name"`
	Subtribes     int      `json:"subtribes"`
	Genera        int      `json:"genera"`
	SubtribesList []string `json:"subtribes_list"`
}

// Aggregate computes the statistics of one group over its records,
// reading placements of the given authority.
//
// Unique species use exact string equality of non-empty species names.
// A genus is taken as the first whitespace token of any species name
// that contains a space; names without a space contribute no genus.
// Higher-taxon sets use non-empty placement values of high-quality
// records, case-sensitive.
func Aggregate(
	grp groups.GroupConfig,
	auth taxonomy.Authority,
	recs []assembly.Record,
) GroupStats {
	res := GroupStats{TotalAssemblies: len(recs)}

	allSpecies := make(map[string]struct{})
	hqSpecies := make(map[string]struct{})
	allGenera := make(map[string]struct{})
	hqGenera := make(map[string]struct{})
	subfamilies := make(map[string]struct{})
	tribes := make(map[string]struct{})
	subtribes := make(map[string]struct{})

	var focusSubtribes, focusGenera map[string]struct{}
	var focusName string
	if grp.FocusTribe != nil {
		focusName = grp.FocusTribe.Name
		focusSubtribes = make(map[string]struct{})
		focusGenera = make(map[string]struct{})
	}

	for _, rec := range recs {
		hq := rec.HighQuality()
		if hq {
			res.HQAssemblies++
		}

		if rec.SpeciesName != "" {
			allSpecies[rec.SpeciesName] = struct{}{}
			if hq {
				hqSpecies[rec.SpeciesName] = struct{}{}
			}
		}
		genus, hasGenus := genusOf(rec.SpeciesName)
		if hasGenus {
			allGenera[genus] = struct{}{}
			if hq {
				hqGenera[genus] = struct{}{}
			}
		}

		if !hq {
			continue
		}

		pl, _ := rec.Placement(auth)
		if pl.Subfamily != "" {
			subfamilies[pl.Subfamily] = struct{}{}
		}
		if pl.Tribe != "" {
			tribes[pl.Tribe] = struct{}{}
		}
		if pl.Subtribe != "" {
			subtribes[pl.Subtribe] = struct{}{}
		}

		if focusName != "" && pl.Tribe == focusName {
			if pl.Subtribe != "" {
				focusSubtribes[pl.Subtribe] = struct{}{}
			}
			if hasGenus {
				focusGenera[genus] = struct{}{}
			}
		}
	}

	res.AllSpecies = len(allSpecies)
	res.HQSpecies = len(hqSpecies)
	res.AllGenera = len(allGenera)
	res.HQGenera = len(hqGenera)
	res.Subfamilies = len(subfamilies)
	res.Tribes = len(tribes)
	res.Subtribes = len(subtribes)
	res.SubfamiliesList = sortedList(subfamilies)
	res.TribesList = sortedList(tribes)
	res.SubtribesList = sortedList(subtribes)

	if grp.FocusTribe != nil {
		res.FocusTribe = &TribeStats{
			Name:          focusName,
			Subtribes:     len(focusSubtribes),
			Genera:        len(focusGenera),
			SubtribesList: sortedList(focusSubtribes),
		}
	}

	return res
}

// genusOf extracts the genus token from a species name. Only names
// containing at least one space carry a genus.
func genusOf(name string) (string, bool) {
	if !strings.Contains(name, " ") {
		return "", false
	}
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", false
	}
	return parts[0], true
}

func sortedList(set map[string]struct{}) []string {
	res := make([]string, 0, len(set))
	for v := range set {
		res = append(res, v)
	}
	slices.Sort(res)
	return res
}
