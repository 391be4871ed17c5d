package srl

import (
	"slices"

	"github.com/OFFIS-RIT/annograph/pkg/graph"
)

// PredicateArgumentConstituents returns the one-hop closure of the
// predicates: every predicate followed by every target of a predicate's
// outgoing relation. Targets are collected before merging, so arguments
// of arguments are never included. Each constituent appears once, in
// first-seen order.
func (v *PredicateArgumentView) PredicateArgumentConstituents() []graph.NodeID {
	predicates := v.Predicates()

	var frontier []graph.NodeID
	for _, p := range predicates {
		for _, r := range v.graph.OutgoingRelations(p) {
			frontier = append(frontier, r.Target)
		}
	}

	seen := make(map[graph.NodeID]struct{}, len(predicates)+len(frontier))
	out := make([]graph.NodeID, 0, len(predicates)+len(frontier))
	for _, id := range slices.Concat(predicates, frontier) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// PredicateArgumentRelations returns every relation entering or leaving a
// constituent of PredicateArgumentConstituents, in ascending ID order.
//
// This is wider than the predicate->argument relations: a relation between
// two arguments, or from an unrelated constituent into an argument, is
// included as well.
func (v *PredicateArgumentView) PredicateArgumentRelations() []graph.EdgeID {
	return v.relationsOf(v.PredicateArgumentConstituents())
}

func (v *PredicateArgumentView) relationsOf(constituents []graph.NodeID) []graph.EdgeID {
	seen := make(map[graph.EdgeID]struct{})
	var out []graph.EdgeID
	for _, id := range constituents {
		for _, eid := range slices.Concat(v.graph.Incoming(id), v.graph.Outgoing(id)) {
			if _, ok := seen[eid]; ok {
				continue
			}
			seen[eid] = struct{}{}
			out = append(out, eid)
		}
	}
	slices.Sort(out)
	return out
}
