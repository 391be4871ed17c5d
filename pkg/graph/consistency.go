package graph

import (
	"errors"
	"fmt"
	"slices"
)

// CheckConsistency verifies that the edge table and the adjacency lists
// describe the same set of relations:
//
//   - every live relation is in its source's outgoing list and its
//     target's incoming list, exactly once;
//   - every adjacency entry names a live relation with the matching endpoint;
//   - no relation touches a constituent that is not registered.
//
// All violations are joined into one error wrapping ErrInconsistent.
func (g *Graph) CheckConsistency() error {
	var errs []error
	report := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInconsistent}, args...)...))
	}

	live := 0
	for _, e := range g.edges {
		if !e.live {
			continue
		}
		live++
		r := e.rel
		src, tgt := g.nodes[r.Source], g.nodes[r.Target]
		if n := count(src.outgoing, r.ID); n != 1 {
			report("relation %d appears %d times in outgoing list of %d", r.ID, n, r.Source)
		}
		if n := count(tgt.incoming, r.ID); n != 1 {
			report("relation %d appears %d times in incoming list of %d", r.ID, n, r.Target)
		}
		if src.state != Registered || tgt.state != Registered {
			report("relation %d connects %d (%s) and %d (%s)", r.ID, r.Source, src.state, r.Target, tgt.state)
		}
	}
	if live != g.live {
		report("live relation count %d, table holds %d", g.live, live)
	}

	for i, n := range g.nodes {
		id := NodeID(i)
		for _, eid := range n.outgoing {
			if e := g.edges[eid]; !e.live || e.rel.Source != id {
				report("outgoing list of %d holds stale relation %d", id, eid)
			}
		}
		for _, eid := range n.incoming {
			if e := g.edges[eid]; !e.live || e.rel.Target != id {
				report("incoming list of %d holds stale relation %d", id, eid)
			}
		}
		registered := slices.Contains(g.order, id)
		if registered != (n.state == Registered) {
			report("constituent %d is %s but registration order says %v", id, n.state, registered)
		}
	}

	return errors.Join(errs...)
}

func count(ids []EdgeID, id EdgeID) int {
	n := 0
	for _, other := range ids {
		if other == id {
			n++
		}
	}
	return n
}
