// Package frames loads small YAML documents describing a tokenized
// sentence, its constituents and its predicate frames, and builds the
// corresponding annotation graph and PredicateArgumentView. It is meant for
// fixtures, golden tests and the srlview tool.
package frames

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/OFFIS-RIT/annograph/internal/util"
	"github.com/OFFIS-RIT/annograph/pkg/common"
	"github.com/OFFIS-RIT/annograph/pkg/graph"
	"github.com/OFFIS-RIT/annograph/pkg/srl"

	"github.com/go-playground/validator"
	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownConstituent is returned by Build when a frame or relation
	// names a constituent the document does not declare.
	ErrUnknownConstituent = errors.New("frames: unknown constituent")

	// ErrDuplicateConstituent is returned by Build when two constituents
	// share a name.
	ErrDuplicateConstituent = errors.New("frames: duplicate constituent")
)

// DefaultScore is used for arguments and relations without a score.
const DefaultScore = 1.0

var validate = validator.New()

// Document is one fixture: a tokenized text unit and its annotations.
type Document struct {
	ID           string            `json:"id,omitempty" yaml:"id" jsonschema:"description=Text unit identifier; generated when empty"`
	View         string            `json:"view,omitempty" yaml:"view" jsonschema:"description=View name,default=SRL_VERB"`
	Tokens       []string          `json:"tokens" yaml:"tokens" validate:"required,min=1"`
	Constituents []ConstituentSpec `json:"constituents" yaml:"constituents" validate:"dive"`
	Frames       []FrameSpec       `json:"frames,omitempty" yaml:"frames" validate:"dive"`
	Relations    []RelationSpec    `json:"relations,omitempty" yaml:"relations" validate:"dive"`
}

// ConstituentSpec names a token span so frames and relations can refer to it.
type ConstituentSpec struct {
	Name       string            `json:"name" yaml:"name" validate:"required"`
	Label      string            `json:"label,omitempty" yaml:"label"`
	Start      int               `json:"start" yaml:"start" validate:"min=0"`
	End        int               `json:"end" yaml:"end" validate:"gtfield=Start" jsonschema:"description=Exclusive end token index"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes"`
}

// FrameSpec registers a predicate with its arguments.
type FrameSpec struct {
	Predicate string         `json:"predicate" yaml:"predicate" validate:"required"`
	Arguments []ArgumentSpec `json:"arguments,omitempty" yaml:"arguments" validate:"dive"`
}

// ArgumentSpec connects a frame's predicate to one argument constituent.
// Score defaults to DefaultScore.
type ArgumentSpec struct {
	Constituent string   `json:"constituent" yaml:"constituent" validate:"required"`
	Relation    string   `json:"relation" yaml:"relation" validate:"required"`
	Score       *float64 `json:"score,omitempty" yaml:"score"`
}

// RelationSpec adds a relation outside any frame, e.g. between two arguments.
type RelationSpec struct {
	Source   string   `json:"source" yaml:"source" validate:"required"`
	Target   string   `json:"target" yaml:"target" validate:"required"`
	Relation string   `json:"relation" yaml:"relation" validate:"required"`
	Score    *float64 `json:"score,omitempty" yaml:"score"`
}

// Load decodes and validates a document. Unknown fields are rejected.
func Load(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// LoadFile loads a document from path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Build creates the graph and view the document describes. Tokens are
// sanitized with util.SanitizeTokens before they reach the graph. All
// constituents are registered in document order, then frames are added in
// order, then the extra relations.
func (d *Document) Build() (*graph.Graph, *srl.PredicateArgumentView, error) {
	viewName := d.View
	if viewName == "" {
		viewName = srl.SRLVerb
	}

	g, err := graph.New(graph.NewGraphParams{ID: d.ID, Name: viewName, Tokens: util.SanitizeTokens(d.Tokens)})
	if err != nil {
		return nil, nil, err
	}
	v, err := srl.NewPredicateArgumentView(srl.NewViewParams{Name: viewName, Graph: g})
	if err != nil {
		return nil, nil, err
	}

	ids := make(map[string]graph.NodeID, len(d.Constituents))
	for _, c := range d.Constituents {
		if _, ok := ids[c.Name]; ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateConstituent, c.Name)
		}
		id, err := g.NewConstituent(graph.ConstituentParams{
			Label:      c.Label,
			Span:       common.Span{Start: c.Start, End: c.End},
			Attributes: c.Attributes,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("constituent %s: %w", c.Name, err)
		}
		if err := g.AddConstituent(id); err != nil {
			return nil, nil, err
		}
		ids[c.Name] = id
	}

	lookup := func(name string) (graph.NodeID, error) {
		id, ok := ids[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownConstituent, name)
		}
		return id, nil
	}

	for _, f := range d.Frames {
		predicate, err := lookup(f.Predicate)
		if err != nil {
			return nil, nil, err
		}
		args := make([]graph.NodeID, 0, len(f.Arguments))
		relations := make([]string, 0, len(f.Arguments))
		scores := make([]float64, 0, len(f.Arguments))
		for _, a := range f.Arguments {
			id, err := lookup(a.Constituent)
			if err != nil {
				return nil, nil, err
			}
			args = append(args, id)
			relations = append(relations, a.Relation)
			scores = append(scores, scoreOrDefault(a.Score))
		}
		if err := v.AddPredicateArguments(predicate, args, relations, scores); err != nil {
			return nil, nil, fmt.Errorf("frame %s: %w", f.Predicate, err)
		}
	}

	for _, r := range d.Relations {
		source, err := lookup(r.Source)
		if err != nil {
			return nil, nil, err
		}
		target, err := lookup(r.Target)
		if err != nil {
			return nil, nil, err
		}
		if _, err := g.AddRelation(r.Relation, source, target, scoreOrDefault(r.Score)); err != nil {
			return nil, nil, fmt.Errorf("relation %s -> %s: %w", r.Source, r.Target, err)
		}
	}

	return g, v, nil
}

// Schema returns the JSON Schema of Document, indented.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&Document{})
	return json.MarshalIndent(s, "", "  ")
}

func scoreOrDefault(score *float64) float64 {
	if score == nil {
		return DefaultScore
	}
	return *score
}
