package ioenrich

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/groups"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// higherRanks returns the ranks listed in higher-taxa files, highest
// first. Family is left out: it is the group itself.
func higherRanks() []taxonomy.Rank {
	return []taxonomy.Rank{
		taxonomy.Subfamily,
		taxonomy.Tribe,
		taxonomy.Subtribe,
		taxonomy.Genus,
	}
}

// writeHigherTaxa saves the distinct higher taxa the authority placed
// the group's species in, one section per rank.
func writeHigherTaxa(
	path string,
	grp groups.GroupConfig,
	auth taxonomy.Authority,
	recs []assembly.Record,
) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Higher Taxa in %s (from %s)\n", grp.Name, auth.Title())
	b.WriteString("# Format: rank | taxon name\n\n")

	for _, rank := range higherRanks() {
		taxa := collectRank(recs, auth, rank)
		fmt.Fprintf(&b, "\n## %s\n", strings.ToUpper(string(rank)))
		fmt.Fprintf(&b, "# Total: %d\n\n", len(taxa))
		for _, taxon := range taxa {
			fmt.Fprintf(&b, "%s\t%s\n", rank, taxon)
		}
		slog.Info("Higher taxa",
			"group", grp.Name,
			"rank", rank,
			"count", len(taxa),
		)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return OutputError(grp.Name, path, err)
	}
	slog.Info("Saved higher-taxa listing", "group", grp.Name, "file", path)
	return nil
}

// collectRank gathers the distinct names the authority placed at the
// rank across all records, sorted.
func collectRank(
	recs []assembly.Record,
	auth taxonomy.Authority,
	rank taxonomy.Rank,
) []string {
	set := make(map[string]struct{})
	for _, rec := range recs {
		pl, ok := rec.Placement(auth)
		if !ok {
			continue
		}
		if v := strings.TrimSpace(pl.RankValue(rank)); v != "" {
			set[v] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(set))
}
