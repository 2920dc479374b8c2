// Package lineage resolves species names through parent-pointer
// taxonomies.
//
// Authorities like Wikidata do not return classifications directly;
// they return an entity whose parent chain must be walked until a
// family is reached. The Walker implements this climb on top of two
// injected primitives, so the walk logic stays independent of any
// transport.
package lineage

import (
	"context"
	"strings"

	"github.com/gnames/gngenomes/pkg/taxonomy"
)

// DefaultMaxDepth bounds the parent-chain walk. The bound is the only
// protection against cycles in the source data, there is no visited
// set.
const DefaultMaxDepth = 20

// Candidate is one search hit returned by an authority for a name.
type Candidate struct {
	ID          string
	Label       string
	Description string
}

// Entity is one node record returned by an authority lookup. RankID
// and ParentID are entity identifiers resolvable with further lookups;
// either can be empty.
type Entity struct {
	Label    string
	RankID   string
	ParentID string
}

// SearchFunc finds candidate entities for a name.
type SearchFunc func(ctx context.Context, name string) ([]Candidate, error)

// LookupFunc fetches a single entity by its identifier. It serves both
// taxon nodes and rank entities.
type LookupFunc func(ctx context.Context, id string) (Entity, error)

// Walker climbs a parent-pointer taxonomy from a species name up to
// its family.
type Walker struct {
	// Search finds the entities to start the walk from.
	Search SearchFunc

	// Lookup fetches entities during the walk.
	Lookup LookupFunc

	// Selector picks the starting entity among search candidates.
	// When nil, the first candidate is used.
	Selector CandidateSelector

	// MaxDepth bounds the walk; DefaultMaxDepth when zero.
	MaxDepth int
}

// NewWalker creates a Walker over the given search and lookup
// primitives with default candidate selection and depth bound.
func NewWalker(search SearchFunc, lookup LookupFunc) *Walker {
	return &Walker{
		Search:   search,
		Lookup:   lookup,
		Selector: FirstSelector{},
		MaxDepth: DefaultMaxDepth,
	}
}

// Resolve finds the name in the authority, walks up the parent chain
// of the best candidate and reduces the lineage into a placement. A
// name without candidates, or one whose walk yields no nodes, resolves
// to a not-found placement; errors signal transport or payload
// problems.
func (w *Walker) Resolve(
	ctx context.Context,
	name string,
) (taxonomy.Placement, error) {
	cands, err := w.Search(ctx, name)
	if err != nil {
		return taxonomy.Placement{}, err
	}
	if len(cands) == 0 {
		return taxonomy.NotFound(name), nil
	}

	sel := w.Selector
	if sel == nil {
		sel = FirstSelector{}
	}
	start := sel.Select(cands)

	nodes, err := w.Walk(ctx, start.ID)
	if err != nil {
		return taxonomy.Placement{}, err
	}
	return taxonomy.PlacementFromLineage(name, nodes), nil
}

// Walk climbs from the entity towards the root, collecting nodes child
// first. The walk stops at the first of: a node without a label (the
// partial lineage is kept), a node of rank family (the node is
// recorded first), a node without a parent, or the depth bound.
func (w *Walker) Walk(
	ctx context.Context,
	id string,
) ([]taxonomy.LineageNode, error) {
	maxDepth := w.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	var nodes []taxonomy.LineageNode
	currID := id

	for range maxDepth {
		ent, err := w.Lookup(ctx, currID)
		if err != nil {
			return nil, err
		}
		if ent.Label == "" {
			break
		}

		rank, err := w.rankLabel(ctx, ent.RankID)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, taxonomy.LineageNode{
			ID:   currID,
			Name: ent.Label,
			Rank: rank,
		})

		if rank == string(taxonomy.Family) {
			break
		}
		if ent.ParentID == "" {
			break
		}
		currID = ent.ParentID
	}

	return nodes, nil
}

// rankLabel resolves a rank entity into its lower-cased label.
func (w *Walker) rankLabel(ctx context.Context, rankID string) (string, error) {
	if rankID == "" {
		return "", nil
	}
	ent, err := w.Lookup(ctx, rankID)
	if err != nil {
		return "", err
	}
	return strings.ToLower(ent.Label), nil
}
