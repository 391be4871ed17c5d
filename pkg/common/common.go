package common

import "fmt"

// Attribute keys written onto predicate constituents by column-format
// corpus readers. A predicate carrying LemmaAttribute renders with that
// lemma instead of its surface form; SenseAttribute holds the frame sense.
const (
	LemmaAttribute = "predicate"
	SenseAttribute = "SenseNumber"
)

// Span is a half-open interval of token indices [Start, End) inside a
// text unit. Spans are the identity of a constituent's position in the
// text and are what canonical renderings sort predicates by.
type Span struct {
	Start int `json:"start" yaml:"start" validate:"min=0"`
	End   int `json:"end" yaml:"end" validate:"gtfield=Start"`
}

// Len returns the number of tokens covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether token index i falls inside the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}
