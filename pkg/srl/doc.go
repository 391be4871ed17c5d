// Package srl provides PredicateArgumentView, an overlay on an annotation
// graph that exposes its predicate-argument (semantic role) structure.
//
// A view tracks which constituents are predicates. Predicates are either
// registered explicitly together with their arguments:
//
//	v, _ := srl.NewPredicateArgumentView(srl.NewViewParams{Name: srl.SRLVerb, Graph: g})
//	err := v.AddPredicateArguments(eat, []graph.NodeID{apple}, []string{"A1"}, []float64{0.9})
//
// or, when nothing was registered, discovered from the graph with a
// PredicatePolicy (by default: constituents without incoming relations).
//
// Every outgoing relation of a predicate is treated as an argument
// relation. The view renders a canonical text form suitable for golden
// comparison and can strip its predicate/argument subgraph from the graph
// either completely (RemoveAllConstituentsAndRelations) or by erasing only
// the connectivity (RemoveAllRelations).
//
// Views are not safe for concurrent use; Predicates updates an internal
// cache.
package srl
