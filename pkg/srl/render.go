package srl

import (
	"io"
	"sort"
	"strings"
)

const argumentIndent = "    "

// String renders the view canonically:
//
//	<lemma>:<sense>
//	    <label>: <surface>[<key>=<value> ...]
//
// Predicates are ordered by span start and each predicate's relations by
// label; ties keep their original order. Attribute lists are only printed
// for targets that have attributes, keys in lexicographic order, each pair
// followed by a space. The output is stable for an unmodified view.
func (v *PredicateArgumentView) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

// WriteTo writes the canonical rendering to w.
func (v *PredicateArgumentView) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, v.String())
	return int64(n), err
}

func (v *PredicateArgumentView) render(sb *strings.Builder) {
	g := v.graph

	predicates := v.Predicates()
	sort.SliceStable(predicates, func(i, j int) bool {
		return g.Span(predicates[i]).Start < g.Span(predicates[j]).Start
	})

	for _, p := range predicates {
		sb.WriteString(v.PredicateLemma(p))
		sb.WriteString(":")
		sb.WriteString(v.PredicateSense(p))
		sb.WriteString("\n")

		relations := g.OutgoingRelations(p)
		sort.SliceStable(relations, func(i, j int) bool {
			return relations[i].Name < relations[j].Name
		})

		for _, r := range relations {
			sb.WriteString(argumentIndent)
			sb.WriteString(r.Name)
			sb.WriteString(": ")
			sb.WriteString(g.SurfaceForm(r.Target))

			if keys := g.AttributeKeys(r.Target); len(keys) > 0 {
				sb.WriteString("[")
				for _, k := range keys {
					sb.WriteString(k)
					sb.WriteString("=")
					sb.WriteString(g.Attribute(r.Target, k))
					sb.WriteString(" ")
				}
				sb.WriteString("]")
			}
			sb.WriteString("\n")
		}
	}
}
