package srl

import (
	"slices"
	"strings"

	"github.com/OFFIS-RIT/annograph/pkg/graph"
	"github.com/OFFIS-RIT/annograph/pkg/logger"
)

// PredicatePolicy decides whether a registered constituent is a predicate.
// It is only consulted when no predicate was registered explicitly.
type PredicatePolicy func(g *graph.Graph, id graph.NodeID) bool

// NoIncomingRelations treats every constituent that is not the target of
// any relation as a predicate.
func NoIncomingRelations(g *graph.Graph, id graph.NodeID) bool {
	return len(g.Incoming(id)) == 0
}

// HasAttribute treats constituents carrying the attribute key as predicates.
func HasAttribute(key string) PredicatePolicy {
	return func(g *graph.Graph, id graph.NodeID) bool {
		return g.HasAttribute(id, key)
	}
}

type cacheState int

const (
	notComputed cacheState = iota
	registered
	discovered
)

// predicateCache separates "never computed" from "computed, empty".
// Registered predicates are authoritative. Discovered predicates are stamped
// with the graph's structure and attribute versions and recomputed once
// either changes.
type predicateCache struct {
	state       cacheState
	ids         []graph.NodeID
	version     uint64
	attrVersion uint64
}

func (c *predicateCache) register(id graph.NodeID) {
	if c.state != registered {
		*c = predicateCache{state: registered}
	}
	if !slices.Contains(c.ids, id) {
		c.ids = append(c.ids, id)
	}
}

func (c *predicateCache) fresh(g *graph.Graph) bool {
	switch c.state {
	case registered:
		return true
	case discovered:
		return c.version == g.Version() && c.attrVersion == g.AttributeVersion()
	default:
		return false
	}
}

func (c *predicateCache) stamp(g *graph.Graph) {
	c.version = g.Version()
	c.attrVersion = g.AttributeVersion()
}

// Predicates returns the view's predicates. Registered predicates are
// returned in registration order. Without registrations the predicate
// policy is applied to the graph's constituents, in registration order;
// that result is reused until the graph's structure or any attribute changes.
func (v *PredicateArgumentView) Predicates() []graph.NodeID {
	if !v.cache.fresh(v.graph) {
		v.discover()
	}
	return slices.Clone(v.cache.ids)
}

// PredicatesComputed reports whether Predicates would return a cached
// result without consulting the policy. It tells an empty result apart
// from one that has not been computed yet.
func (v *PredicateArgumentView) PredicatesComputed() bool {
	return v.cache.fresh(v.graph)
}

// InvalidatePredicates drops discovered predicates so the next call to
// Predicates applies the policy again. Registered predicates are kept.
func (v *PredicateArgumentView) InvalidatePredicates() {
	if v.cache.state == discovered {
		v.cache = predicateCache{}
	}
}

// IsPredicate reports whether id is one of the view's predicates.
func (v *PredicateArgumentView) IsPredicate(id graph.NodeID) bool {
	return slices.Contains(v.Predicates(), id)
}

func (v *PredicateArgumentView) discover() {
	var ids []graph.NodeID
	for _, id := range v.graph.Constituents() {
		if v.policy(v.graph, id) {
			ids = append(ids, id)
		}
	}
	v.cache = predicateCache{state: discovered, ids: ids}
	v.cache.stamp(v.graph)
	logger.Debug("[SRL] Discovered predicates", "view", v.name, "count", len(ids))
}

func normalizeSurface(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
