package graph

import "github.com/OFFIS-RIT/annograph/pkg/common"

// NodeID addresses a constituent in the graph's node arena. IDs are
// allocated sequentially and never reused, so they stay valid after the
// node is removed.
type NodeID int

// EdgeID addresses a relation in the graph's edge table.
type EdgeID int

// State is the lifecycle of a constituent within one graph.
//
//	Unregistered -> Registered -> Removed
//
// A removed constituent may be registered again; it comes back without edges.
// Whether a registered node is connected is derived from its adjacency.
type State int

const (
	Unregistered State = iota
	Registered
	Removed
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case Registered:
		return "registered"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Constituent is a snapshot of a text span node. Attributes is a copy;
// mutate through Graph.SetAttribute.
type Constituent struct {
	ID         NodeID
	Label      string
	Span       common.Span
	Attributes map[string]string
}

// Relation is a directed, labeled, scored edge. By convention the source
// is a predicate and the target one of its arguments, but nothing in the
// graph enforces that.
type Relation struct {
	ID     EdgeID
	Name   string
	Source NodeID
	Target NodeID
	Score  float64
}

type node struct {
	label      string
	span       common.Span
	attributes map[string]string
	state      State
	incoming   []EdgeID
	outgoing   []EdgeID
}

type edge struct {
	rel  Relation
	live bool
}
