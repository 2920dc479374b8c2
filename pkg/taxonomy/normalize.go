package taxonomy

// RankedName is one rank/name pair of a classification sequence, the
// shape the Catalogue of Life returns classifications in.
type RankedName struct {
	Rank string
	Name string
}

// LineageNode is one step of a parent-pointer walk through an
// authority, child before parent. Rank holds the node's rank label in
// lower case, empty when the authority does not state it.
type LineageNode struct {
	ID   string
	Name string
	Rank string
}

// PlacementFromClassification folds a classification sequence into a
// Placement. Rank labels are matched case-insensitively against the
// tracked vocabulary and entries outside of it are skipped. When the
// same rank appears more than once, the last entry wins. An empty
// accepted name falls back to the queried name.
func PlacementFromClassification(
	query, accepted string,
	cl []RankedName,
) Placement {
	res := Placement{AcceptedName: accepted}
	if res.AcceptedName == "" {
		res.AcceptedName = query
	}

	for _, rn := range cl {
		rank, ok := RankFromString(rn.Rank)
		if !ok || rn.Name == "" {
			continue
		}
		res.SetRankValue(rank, rn.Name)
	}
	return res
}

// PlacementFromLineage reduces a child-first lineage into a Placement.
// In a parent-pointer walk the node closest to the species is the most
// specific one, so the first node seen at each tracked rank wins. The
// accepted name is the label of the first node and its ID becomes the
// record ID; an empty lineage yields a not-found placement.
func PlacementFromLineage(query string, nodes []LineageNode) Placement {
	if len(nodes) == 0 {
		return NotFound(query)
	}

	res := Placement{
		AcceptedName: nodes[0].Name,
		RecordID:     nodes[0].ID,
	}
	if res.AcceptedName == "" {
		res.AcceptedName = query
	}

	for _, n := range nodes {
		rank, ok := RankFromString(n.Rank)
		if !ok || n.Name == "" {
			continue
		}
		if res.RankValue(rank) == "" {
			res.SetRankValue(rank, n.Name)
		}
	}
	return res
}
