package graph

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strings"

	"github.com/OFFIS-RIT/annograph/pkg/common"

	"github.com/go-playground/validator"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var validate = validator.New()

// Graph is the annotation graph of one text unit. It owns every
// constituent and relation created for that text.
//
// Nodes and edges live in arenas addressed by NodeID and EdgeID. The edge
// table is authoritative: adjacency lists only hold EdgeIDs, and every
// method that adds or removes an edge updates the table and both
// endpoints' adjacency lists together. After any public call an edge is
// either in all three places or in none.
//
// A Graph is not safe for concurrent use.
type Graph struct {
	id      string
	name    string
	tokens  []string
	nodes   []*node
	edges   []*edge
	order   []NodeID
	live    int
	version uint64
	attrs   uint64
}

// NewGraphParams configures a new Graph.
//
// ID identifies the text unit; a nanoid is generated when it is empty.
// Tokens are the already tokenized text; spans index into them.
type NewGraphParams struct {
	ID     string
	Name   string
	Tokens []string `validate:"required,min=1"`
}

// New creates an empty graph over the given tokens.
func New(params NewGraphParams) (*Graph, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid graph params: %w", err)
	}

	id := params.ID
	if id == "" {
		generated, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate graph id: %w", err)
		}
		id = generated
	}

	return &Graph{
		id:     id,
		name:   params.Name,
		tokens: slices.Clone(params.Tokens),
	}, nil
}

// ID returns the text unit identifier.
func (g *Graph) ID() string { return g.id }

// Name returns the optional display name.
func (g *Graph) Name() string { return g.name }

// Tokens returns a copy of the token sequence.
func (g *Graph) Tokens() []string { return slices.Clone(g.tokens) }

// Version increments on every structural mutation: registering or removing
// a constituent and adding or removing a relation. Attribute changes do not
// count. Caches derived from graph structure compare versions to detect
// staleness.
func (g *Graph) Version() uint64 { return g.version }

// AttributeVersion increments on every SetAttribute call.
func (g *Graph) AttributeVersion() uint64 { return g.attrs }

// ConstituentParams describes a constituent to allocate.
type ConstituentParams struct {
	Label      string
	Span       common.Span
	Attributes map[string]string
}

// NewConstituent allocates a constituent in the Unregistered state. It is
// not part of the graph's constituent collection until AddConstituent.
func (g *Graph) NewConstituent(params ConstituentParams) (NodeID, error) {
	if err := validate.Struct(params); err != nil {
		return 0, fmt.Errorf("%w %s: %v", ErrInvalidSpan, params.Span, err)
	}
	if params.Span.End > len(g.tokens) {
		return 0, fmt.Errorf("%w %s: text has %d tokens", ErrInvalidSpan, params.Span, len(g.tokens))
	}

	attrs := make(map[string]string, len(params.Attributes))
	maps.Copy(attrs, params.Attributes)

	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, &node{
		label:      params.Label,
		span:       params.Span,
		attributes: attrs,
		state:      Unregistered,
	})
	return id, nil
}

// AddConstituent registers a constituent in the graph's collection.
// Registering an already registered constituent is a no-op.
func (g *Graph) AddConstituent(id NodeID) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	if n.state == Registered {
		return nil
	}
	n.state = Registered
	g.order = append(g.order, id)
	g.version++
	return nil
}

// RemoveConstituent unregisters a constituent and removes every relation
// touching it, including relations whose other endpoint is outside any
// caller-side selection. It reports whether the constituent was registered.
func (g *Graph) RemoveConstituent(id NodeID) bool {
	n, err := g.node(id)
	if err != nil || n.state != Registered {
		return false
	}

	incident := append(slices.Clone(n.incoming), n.outgoing...)
	for _, eid := range incident {
		g.RemoveRelation(eid)
	}

	n.state = Removed
	g.order = slices.DeleteFunc(g.order, func(other NodeID) bool { return other == id })
	g.version++
	return true
}

// AddRelation creates a directed relation from source to target. Both
// endpoints must be registered.
func (g *Graph) AddRelation(name string, source, target NodeID, score float64) (EdgeID, error) {
	for _, id := range []NodeID{source, target} {
		n, err := g.node(id)
		if err != nil {
			return 0, err
		}
		if n.state != Registered {
			return 0, fmt.Errorf("%w: %d is %s", ErrConstituentNotRegistered, id, n.state)
		}
	}

	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, &edge{
		rel: Relation{
			ID:     id,
			Name:   name,
			Source: source,
			Target: target,
			Score:  score,
		},
		live: true,
	})
	g.nodes[source].outgoing = append(g.nodes[source].outgoing, id)
	g.nodes[target].incoming = append(g.nodes[target].incoming, id)
	g.live++
	g.version++
	return id, nil
}

// RemoveRelation removes a relation from the edge table and from both
// endpoints' adjacency lists. It reports whether the relation was present.
func (g *Graph) RemoveRelation(id EdgeID) bool {
	if id < 0 || int(id) >= len(g.edges) || !g.edges[id].live {
		return false
	}
	e := g.edges[id]
	e.live = false

	src := g.nodes[e.rel.Source]
	src.outgoing = slices.DeleteFunc(src.outgoing, func(other EdgeID) bool { return other == id })
	tgt := g.nodes[e.rel.Target]
	tgt.incoming = slices.DeleteFunc(tgt.incoming, func(other EdgeID) bool { return other == id })

	g.live--
	g.version++
	return true
}

// RemoveAllIncomingRelations removes every relation targeting the
// constituent and returns how many were removed.
func (g *Graph) RemoveAllIncomingRelations(id NodeID) int {
	n, err := g.node(id)
	if err != nil {
		return 0
	}
	removed := 0
	for _, eid := range slices.Clone(n.incoming) {
		if g.RemoveRelation(eid) {
			removed++
		}
	}
	return removed
}

// RemoveAllOutgoingRelations removes every relation leaving the
// constituent and returns how many were removed.
func (g *Graph) RemoveAllOutgoingRelations(id NodeID) int {
	n, err := g.node(id)
	if err != nil {
		return 0
	}
	removed := 0
	for _, eid := range slices.Clone(n.outgoing) {
		if g.RemoveRelation(eid) {
			removed++
		}
	}
	return removed
}

// Constituents returns the registered constituents in registration order.
func (g *Graph) Constituents() []NodeID {
	return slices.Clone(g.order)
}

// Relations returns the live relations in creation order.
func (g *Graph) Relations() []EdgeID {
	out := make([]EdgeID, 0, g.live)
	for _, e := range g.edges {
		if e.live {
			out = append(out, e.rel.ID)
		}
	}
	return out
}

// Len returns the number of registered constituents.
func (g *Graph) Len() int { return len(g.order) }

// RelationCount returns the number of live relations.
func (g *Graph) RelationCount() int { return g.live }

// Contains reports whether the constituent is registered.
func (g *Graph) Contains(id NodeID) bool {
	return g.State(id) == Registered
}

// State returns the lifecycle state of a constituent. Unknown IDs report
// Unregistered.
func (g *Graph) State(id NodeID) State {
	n, err := g.node(id)
	if err != nil {
		return Unregistered
	}
	return n.state
}

// Constituent returns a snapshot of the constituent.
func (g *Graph) Constituent(id NodeID) (Constituent, bool) {
	n, err := g.node(id)
	if err != nil {
		return Constituent{}, false
	}
	return Constituent{
		ID:         id,
		Label:      n.label,
		Span:       n.span,
		Attributes: maps.Clone(n.attributes),
	}, true
}

// Relation returns a live relation.
func (g *Graph) Relation(id EdgeID) (Relation, bool) {
	if id < 0 || int(id) >= len(g.edges) || !g.edges[id].live {
		return Relation{}, false
	}
	return g.edges[id].rel, true
}

// Incoming returns the IDs of relations targeting the constituent.
func (g *Graph) Incoming(id NodeID) []EdgeID {
	n, err := g.node(id)
	if err != nil {
		return nil
	}
	return slices.Clone(n.incoming)
}

// Outgoing returns the IDs of relations leaving the constituent.
func (g *Graph) Outgoing(id NodeID) []EdgeID {
	n, err := g.node(id)
	if err != nil {
		return nil
	}
	return slices.Clone(n.outgoing)
}

// IncomingRelations returns the relations targeting the constituent in
// the order they were added.
func (g *Graph) IncomingRelations(id NodeID) []Relation {
	return g.resolve(g.Incoming(id))
}

// OutgoingRelations returns the relations leaving the constituent in the
// order they were added.
func (g *Graph) OutgoingRelations(id NodeID) []Relation {
	return g.resolve(g.Outgoing(id))
}

func (g *Graph) resolve(ids []EdgeID) []Relation {
	out := make([]Relation, 0, len(ids))
	for _, eid := range ids {
		out = append(out, g.edges[eid].rel)
	}
	return out
}

// Span returns the token span of the constituent.
func (g *Graph) Span(id NodeID) common.Span {
	n, err := g.node(id)
	if err != nil {
		return common.Span{}
	}
	return n.span
}

// SurfaceForm returns the tokens covered by the constituent joined by
// single spaces.
func (g *Graph) SurfaceForm(id NodeID) string {
	n, err := g.node(id)
	if err != nil {
		return ""
	}
	return strings.Join(g.tokens[n.span.Start:n.span.End], " ")
}

// HasAttribute reports whether the constituent carries the attribute key.
func (g *Graph) HasAttribute(id NodeID, key string) bool {
	n, err := g.node(id)
	if err != nil {
		return false
	}
	_, ok := n.attributes[key]
	return ok
}

// Attribute returns the attribute value, or "" when absent.
func (g *Graph) Attribute(id NodeID, key string) string {
	n, err := g.node(id)
	if err != nil {
		return ""
	}
	return n.attributes[key]
}

// AttributeKeys returns the constituent's attribute keys in lexicographic order.
func (g *Graph) AttributeKeys(id NodeID) []string {
	n, err := g.node(id)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(n.attributes))
	for k := range n.attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetAttribute sets an attribute on the constituent.
func (g *Graph) SetAttribute(id NodeID, key, value string) error {
	n, err := g.node(id)
	if err != nil {
		return err
	}
	n.attributes[key] = value
	g.attrs++
	return nil
}

func (g *Graph) node(id NodeID) (*node, error) {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil, fmt.Errorf("%w: %d", ErrConstituentNotFound, id)
	}
	return g.nodes[id], nil
}
