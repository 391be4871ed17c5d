package srl

import "github.com/OFFIS-RIT/annograph/pkg/logger"

// Removal summarizes what a removal protocol took out of the graph.
type Removal struct {
	Constituents int
	Relations    int
}

// RemoveAllConstituentsAndRelations removes the predicate/argument closure
// from the graph. The relation closure is captured first; then every
// closure constituent is removed, which also detaches relations to
// constituents outside the closure; then the captured relations are
// removed. Afterwards no closure constituent or closure relation is in the
// graph and the view has no predicates.
func (v *PredicateArgumentView) RemoveAllConstituentsAndRelations() Removal {
	constituents := v.PredicateArgumentConstituents()
	relations := v.relationsOf(constituents)
	before := v.graph.RelationCount()

	var res Removal
	for _, id := range constituents {
		if v.graph.RemoveConstituent(id) {
			res.Constituents++
		}
	}
	for _, id := range relations {
		v.graph.RemoveRelation(id)
	}
	res.Relations = before - v.graph.RelationCount()

	v.cache = predicateCache{}

	logger.Debug("[SRL] Removed constituents and relations",
		"view", v.name, "constituents", res.Constituents, "relations", res.Relations)
	return res
}

// RemoveAllRelations erases the connectivity of the predicate/argument
// closure. Every relation entering or leaving a closure constituent is
// removed from the graph and from both endpoints' adjacency lists. The
// constituents stay registered and the predicate set is unchanged, whether
// it was registered or discovered.
func (v *PredicateArgumentView) RemoveAllRelations() Removal {
	constituents := v.PredicateArgumentConstituents()

	var res Removal
	for _, id := range constituents {
		res.Relations += v.graph.RemoveAllIncomingRelations(id)
		res.Relations += v.graph.RemoveAllOutgoingRelations(id)
	}
	if v.cache.state == discovered {
		v.cache.stamp(v.graph)
	}

	logger.Debug("[SRL] Removed relations",
		"view", v.name, "constituents", len(constituents), "relations", res.Relations)
	return res
}
