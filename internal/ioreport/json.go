package ioreport

import (
	"os"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gngenomes/pkg/stats"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// statsJSON is the wire shape of the statistics export. Group keys are
// lowercased group names.
type statsJSON struct {
	DiversityEstimates map[string]diversityJSON `json:"diversity_estimates"`
	Groups             map[string]groupJSON     `json:"groups"`
}

type diversityJSON struct {
	Species     int            `json:"species"`
	Genera      int            `json:"genera"`
	Subfamilies int            `json:"subfamilies"`
	FocusTribe  *tribeBaseJSON `json:"focus_tribe,omitempty"`
}

type tribeBaseJSON struct {
	Name      string `json:"name"`
	Subtribes int    `json:"subtribes"`
}

type groupJSON struct {
	Name      string             `json:"name"`
	Authority taxonomy.Authority `json:"authority"`
	Stats     stats.GroupStats   `json:"stats"`
	Coverage  stats.Coverage     `json:"coverage"`
}

func writeJSON(path string, reps []groupReport) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(newStatsJSON(reps))
	if err != nil {
		return RenderError(err)
	}

	if err = os.WriteFile(path, out, 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func newStatsJSON(reps []groupReport) statsJSON {
	res := statsJSON{
		DiversityEstimates: make(map[string]diversityJSON, len(reps)),
		Groups:             make(map[string]groupJSON, len(reps)),
	}

	for _, rep := range reps {
		grp := rep.Group
		key := strings.ToLower(grp.Name)

		div := diversityJSON{
			Species:     grp.Diversity.Species,
			Genera:      grp.Diversity.Genera,
			Subfamilies: grp.Diversity.Subfamilies,
		}
		if grp.FocusTribe != nil {
			div.FocusTribe = &tribeBaseJSON{
				Name:      grp.FocusTribe.Name,
				Subtribes: grp.FocusTribe.Subtribes,
			}
		}
		res.DiversityEstimates[key] = div

		res.Groups[key] = groupJSON{
			Name:      grp.Name,
			Authority: rep.Authority,
			Stats:     rep.Stats,
			Coverage:  rep.Coverage,
		}
	}
	return res
}
