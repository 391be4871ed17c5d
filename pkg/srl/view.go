package srl

import (
	"fmt"
	"slices"

	"github.com/OFFIS-RIT/annograph/pkg/common"
	"github.com/OFFIS-RIT/annograph/pkg/graph"
	"github.com/OFFIS-RIT/annograph/pkg/logger"

	"github.com/go-playground/validator"
)

// Conventional view names for semantic role layers.
const (
	SRLVerb = "SRL_VERB"
	SRLNom  = "SRL_NOM"
	SRLPrep = "SRL_PREP"
)

var validate = validator.New()

// PredicateArgumentView overlays predicate-argument structure on a graph.
// The graph is referenced, not owned: constituents and relations are
// created in it and removed from it by the view's operations.
type PredicateArgumentView struct {
	name      string
	generator string
	score     float64
	graph     *graph.Graph
	policy    PredicatePolicy
	cache     predicateCache
}

// NewViewParams configures a PredicateArgumentView.
//
// Generator defaults to "<Name>-annotator" and Score to 1.0. Policy
// defaults to NoIncomingRelations.
type NewViewParams struct {
	Name      string       `validate:"required"`
	Generator string
	Score     float64      `validate:"gte=0"`
	Graph     *graph.Graph `validate:"required"`
	Policy    PredicatePolicy
}

// NewPredicateArgumentView creates an empty view over g.
func NewPredicateArgumentView(params NewViewParams) (*PredicateArgumentView, error) {
	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid view params: %w", err)
	}

	generator := params.Generator
	if generator == "" {
		generator = params.Name + "-annotator"
	}
	score := params.Score
	if score == 0 {
		score = 1.0
	}
	policy := params.Policy
	if policy == nil {
		policy = NoIncomingRelations
	}

	return &PredicateArgumentView{
		name:      params.Name,
		generator: generator,
		score:     score,
		graph:     params.Graph,
		policy:    policy,
	}, nil
}

// Name returns the view name.
func (v *PredicateArgumentView) Name() string { return v.name }

// Generator returns the name of the annotator that produced the view.
func (v *PredicateArgumentView) Generator() string { return v.generator }

// Score returns the view-level confidence.
func (v *PredicateArgumentView) Score() float64 { return v.score }

// Graph returns the overlaid graph.
func (v *PredicateArgumentView) Graph() *graph.Graph { return v.graph }

// AddPredicateArguments registers predicate and connects it to each
// argument with a relation carrying the matching label and score.
//
// The three slices must have the same length, and every constituent must
// have been allocated in the view's graph; otherwise an error is returned
// before anything is changed. Predicate and arguments are registered in the
// graph if they are not already.
//
// Registering the same predicate twice adds the new arguments but keeps a
// single entry in the predicate sequence.
func (v *PredicateArgumentView) AddPredicateArguments(
	predicate graph.NodeID,
	args []graph.NodeID,
	relations []string,
	scores []float64,
) error {
	if len(args) != len(relations) {
		return fmt.Errorf("%w: %d arguments, %d relations", ErrArityMismatch, len(args), len(relations))
	}
	if len(args) != len(scores) {
		return fmt.Errorf("%w: %d arguments, %d scores", ErrArityMismatch, len(args), len(scores))
	}
	for _, id := range slices.Concat([]graph.NodeID{predicate}, args) {
		if _, ok := v.graph.Constituent(id); !ok {
			return fmt.Errorf("%w: %d", graph.ErrConstituentNotFound, id)
		}
	}

	if err := v.graph.AddConstituent(predicate); err != nil {
		return err
	}
	v.cache.register(predicate)

	for i, arg := range args {
		if err := v.graph.AddConstituent(arg); err != nil {
			return err
		}
		if _, err := v.graph.AddRelation(relations[i], predicate, arg, scores[i]); err != nil {
			return fmt.Errorf("failed to add %s relation: %w", relations[i], err)
		}
	}

	logger.Debug("[SRL] Registered predicate",
		"view", v.name, "predicate", predicate, "arguments", len(args))
	return nil
}

// Arguments returns every outgoing relation of predicate. All outgoing
// relations are treated as argument relations; no label filtering happens.
func (v *PredicateArgumentView) Arguments(predicate graph.NodeID) ([]graph.Relation, error) {
	if !v.IsPredicate(predicate) {
		return nil, fmt.Errorf("%w: constituent %d in view %s", ErrPredicateNotFound, predicate, v.name)
	}
	return v.graph.OutgoingRelations(predicate), nil
}

// PredicateLemma returns the lemma attribute of the predicate, or its
// surface form lowercased and trimmed.
func (v *PredicateArgumentView) PredicateLemma(predicate graph.NodeID) string {
	if v.graph.HasAttribute(predicate, common.LemmaAttribute) {
		return v.graph.Attribute(predicate, common.LemmaAttribute)
	}
	return normalizeSurface(v.graph.SurfaceForm(predicate))
}

// PredicateSense returns the sense attribute of the predicate, or "".
func (v *PredicateArgumentView) PredicateSense(predicate graph.NodeID) string {
	if v.graph.HasAttribute(predicate, common.SenseAttribute) {
		return v.graph.Attribute(predicate, common.SenseAttribute)
	}
	return ""
}
