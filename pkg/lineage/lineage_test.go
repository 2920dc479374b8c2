package lineage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gnames/gngenomes/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEntity is an in-memory parent-pointer taxonomy node for tests.
type fakeEntity struct {
	label  string
	rank   string
	parent string
}

// fakeTaxonomy builds Search/Lookup funcs over an in-memory graph.
// Rank labels become synthetic rank entities, the way Wikidata stores
// ranks as items of their own.
func fakeTaxonomy(
	hits map[string][]Candidate,
	entities map[string]fakeEntity,
) (SearchFunc, LookupFunc) {
	search := func(_ context.Context, name string) ([]Candidate, error) {
		return hits[name], nil
	}
	lookup := func(_ context.Context, id string) (Entity, error) {
		if e, ok := entities[id]; ok {
			var rankID string
			if e.rank != "" {
				rankID = "rank:" + e.rank
			}
			return Entity{Label: e.label, RankID: rankID, ParentID: e.parent}, nil
		}
		if rank, ok := strings.CutPrefix(id, "rank:"); ok {
			return Entity{Label: rank}, nil
		}
		return Entity{}, nil
	}
	return search, lookup
}

func weevilTaxonomy() (SearchFunc, LookupFunc) {
	hits := map[string][]Candidate{
		"Sitophilus oryzae": {
			{ID: "Q1889104", Label: "Sitophilus oryzae", Description: "species of beetle"},
		},
		"Atlantis oryzae": {
			{ID: "Q100", Label: "Atlantis", Description: "legendary island"},
			{ID: "Q101", Label: "Atlantis oryzae", Description: "species of weevil"},
		},
	}
	entities := map[string]fakeEntity{
		"Q1889104": {label: "Sitophilus oryzae", rank: "species", parent: "Q941690"},
		"Q941690":  {label: "Sitophilus", rank: "genus", parent: "Q1320002"},
		"Q1320002": {label: "Dryophthorinae", rank: "subfamily", parent: "Q7415384"},
		"Q7415384": {label: "Curculionidae", rank: "family", parent: "Q271218"},
		"Q271218":  {label: "Curculionoidea", rank: "superfamily", parent: ""},
		"Q101":     {label: "Atlantis oryzae", rank: "species", parent: ""},
	}
	return fakeTaxonomy(hits, entities)
}

func TestWalkerResolve(t *testing.T) {
	search, lookup := weevilTaxonomy()
	w := NewWalker(search, lookup)

	pl, err := w.Resolve(context.Background(), "Sitophilus oryzae")
	require.NoError(t, err)

	want := taxonomy.Placement{
		AcceptedName: "Sitophilus oryzae",
		RecordID:     "Q1889104",
		Family:       "Curculionidae",
		Subfamily:    "Dryophthorinae",
		Genus:        "Sitophilus",
	}
	assert.Equal(t, want, pl)
}

func TestWalkerResolve_StopsAtFamily(t *testing.T) {
	search, lookup := weevilTaxonomy()

	var lookups []string
	counting := func(ctx context.Context, id string) (Entity, error) {
		lookups = append(lookups, id)
		return lookup(ctx, id)
	}

	w := NewWalker(search, counting)
	_, err := w.Resolve(context.Background(), "Sitophilus oryzae")
	require.NoError(t, err)

	// the family node is recorded, its parent is never visited
	assert.Contains(t, lookups, "Q7415384")
	assert.NotContains(t, lookups, "Q271218")
}

func TestWalkerResolve_NoCandidates(t *testing.T) {
	search, lookup := weevilTaxonomy()
	w := NewWalker(search, lookup)

	pl, err := w.Resolve(context.Background(), "Nonexistus maximus")
	require.NoError(t, err)
	assert.Equal(t, taxonomy.NotFound("Nonexistus maximus"), pl)
	assert.False(t, pl.Found())
}

func TestWalkerResolve_KeywordSelector(t *testing.T) {
	search, lookup := weevilTaxonomy()
	w := NewWalker(search, lookup)
	w.Selector = NewKeywordSelector(nil)

	// the first hit is a popularity match, the keywords skip it
	pl, err := w.Resolve(context.Background(), "Atlantis oryzae")
	require.NoError(t, err)
	assert.Equal(t, "Q101", pl.RecordID)
	assert.Equal(t, "Atlantis oryzae", pl.AcceptedName)
}

func TestWalkerResolve_SearchError(t *testing.T) {
	boom := errors.New("boom")
	search := func(context.Context, string) ([]Candidate, error) {
		return nil, boom
	}
	lookup := func(context.Context, string) (Entity, error) {
		return Entity{}, nil
	}

	w := NewWalker(search, lookup)
	_, err := w.Resolve(context.Background(), "Sitophilus oryzae")
	assert.ErrorIs(t, err, boom)
}

func TestWalk_DepthBoundStopsCycles(t *testing.T) {
	// Q1 and Q2 point at each other; only the depth bound stops the walk.
	entities := map[string]fakeEntity{
		"Q1": {label: "Alpha", rank: "clade", parent: "Q2"},
		"Q2": {label: "Beta", rank: "clade", parent: "Q1"},
	}
	search, lookup := fakeTaxonomy(nil, entities)

	w := NewWalker(search, lookup)
	w.MaxDepth = 6

	nodes, err := w.Walk(context.Background(), "Q1")
	require.NoError(t, err)
	assert.Len(t, nodes, 6)
}

func TestWalk_EmptyLabelKeepsPartialLineage(t *testing.T) {
	entities := map[string]fakeEntity{
		"Q1": {label: "Sitophilus oryzae", rank: "species", parent: "Q2"},
		// Q2 exists but has no label
		"Q2": {label: "", rank: "genus", parent: "Q3"},
	}
	search, lookup := fakeTaxonomy(nil, entities)

	w := NewWalker(search, lookup)
	nodes, err := w.Walk(context.Background(), "Q1")
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	assert.Equal(t, "Sitophilus oryzae", nodes[0].Name)
	assert.Equal(t, "species", nodes[0].Rank)
}

func TestWalk_MissingRankEntity(t *testing.T) {
	entities := map[string]fakeEntity{
		"Q1": {label: "Incertae sedis", rank: "", parent: ""},
	}
	search, lookup := fakeTaxonomy(nil, entities)

	w := NewWalker(search, lookup)
	nodes, err := w.Walk(context.Background(), "Q1")
	require.NoError(t, err)

	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Rank)
}

func TestKeywordSelector_FallsBackToFirst(t *testing.T) {
	sel := NewKeywordSelector([]string{"beetle"})
	cands := []Candidate{
		{ID: "Q1", Description: "a town in Norway"},
		{ID: "Q2", Description: "a river"},
	}
	assert.Equal(t, "Q1", sel.Select(cands).ID)
}
