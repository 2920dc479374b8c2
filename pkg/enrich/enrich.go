// Package enrich attaches taxonomic placements to assembly records.
//
// The package is pure orchestration: it decides which names are worth
// resolving and how failures degrade, while the network work happens in
// the Resolver it is given. Resolvers pace their own requests, so this
// loop runs them back to back.
package enrich

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gnames/gngenomes/pkg/assembly"
	"github.com/gnames/gngenomes/pkg/gngenomes"
	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// Enrich resolves the species name of every record against the
// resolver's authority and attaches the resulting placement under that
// authority. Records are updated in place, in order; the returned slice
// is the input slice.
//
// The second return value lists species names (verbatim, possibly
// empty strings) whose resolution produced nothing: names that are not
// binomials, names the authority does not know, and names whose
// resolution errored. Errors from the resolver degrade to a not-found
// placement so one flaky response does not abort a long run; only
// context cancellation stops the loop early.
//
// progress, when not nil, is called once per processed record.
func Enrich(
	ctx context.Context,
	recs []assembly.Record,
	resolver gngenomes.Resolver,
	progress func(),
) ([]assembly.Record, []string, error) {
	auth := resolver.Authority()
	var failed []string

	for i := range recs {
		if err := ctx.Err(); err != nil {
			return recs, failed, err
		}

		name := recs[i].SpeciesName
		binomial, ok := splitBinomial(name)
		if !ok {
			recs[i].SetPlacement(auth, taxonomy.NotFound(name))
			failed = append(failed, name)
			if progress != nil {
				progress()
			}
			continue
		}

		pl, err := resolver.Resolve(ctx, binomial)
		if err != nil {
			slog.Warn("Name resolution failed",
				"name", binomial, "authority", auth, "error", err)
			pl = taxonomy.NotFound(binomial)
		}
		if !pl.Found() {
			failed = append(failed, name)
		}
		recs[i].SetPlacement(auth, pl)

		if progress != nil {
			progress()
		}
	}

	return recs, failed, nil
}

// splitBinomial reduces a species name to its canonical binomial: the
// first two whitespace-separated tokens. Trailing tokens (authorship,
// infraspecific qualifiers) are dropped. Names with fewer than two
// tokens are not binomials and report false.
func splitBinomial(name string) (string, bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", false
	}
	return parts[0] + " " + parts[1], true
}
