// Package annotation defines the move annotation value handed from the
// analysis side to the overlay. Values are constructed through New so that
// an annotation with an unrecognized quality label never enters the
// presentation path.
package annotation

import (
	"errors"
	"fmt"
)

// Label classifies the quality of a played move.
type Label string

const (
	Brilliant  Label = "brilliant"
	Best       Label = "best"
	Excellent  Label = "excellent"
	Good       Label = "good"
	Inaccuracy Label = "inaccuracy"
	Mistake    Label = "mistake"
	Blunder    Label = "blunder"
	Forced     Label = "forced"
)

// Labels lists every recognized label in severity order, best first.
var Labels = []Label{Brilliant, Best, Excellent, Good, Inaccuracy, Mistake, Blunder, Forced}

// Sentinel errors for construction failures. Check with errors.Is.
var (
	ErrUnknownLabel  = errors.New("unknown move label")
	ErrEmptyBestMove = errors.New("best move is required")
	ErrNegativeDepth = errors.New("depth must be non-negative")
)

// ParseLabel converts a raw string to a Label.
func ParseLabel(s string) (Label, error) {
	for _, l := range Labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// MoveAnnotation is a single move's quality classification plus the engine
// data supporting it. Values are immutable once built.
type MoveAnnotation struct {
	Label            Label
	BestMove         string
	OpponentBestMove string // empty = not provided
	Evaluation       *int   // centipawns, nil = not provided
	Depth            *int   // nil = not provided
}

// Option customizes the optional fields of a MoveAnnotation.
type Option func(*MoveAnnotation)

// WithOpponentBest sets the opponent's predicted best response.
func WithOpponentBest(move string) Option {
	return func(a *MoveAnnotation) { a.OpponentBestMove = move }
}

// WithEvaluation sets the centipawn evaluation.
func WithEvaluation(cp int) Option {
	return func(a *MoveAnnotation) { a.Evaluation = &cp }
}

// WithDepth sets the engine search depth.
func WithDepth(d int) Option {
	return func(a *MoveAnnotation) { a.Depth = &d }
}

// New builds a MoveAnnotation, rejecting unknown labels and empty best
// moves at construction time.
func New(label string, bestMove string, opts ...Option) (MoveAnnotation, error) {
	l, err := ParseLabel(label)
	if err != nil {
		return MoveAnnotation{}, err
	}
	if bestMove == "" {
		return MoveAnnotation{}, ErrEmptyBestMove
	}
	a := MoveAnnotation{Label: l, BestMove: bestMove}
	for _, opt := range opts {
		opt(&a)
	}
	if a.Depth != nil && *a.Depth < 0 {
		return MoveAnnotation{}, fmt.Errorf("%w: %d", ErrNegativeDepth, *a.Depth)
	}
	return a, nil
}

// String formats the annotation for debug logging.
func (a MoveAnnotation) String() string {
	s := fmt.Sprintf("MoveAnnotation(label=%s, best=%s", a.Label, a.BestMove)
	if a.OpponentBestMove != "" {
		s += fmt.Sprintf(", opp_best=%s", a.OpponentBestMove)
	}
	if a.Evaluation != nil {
		s += fmt.Sprintf(", eval=%+dcp", *a.Evaluation)
	}
	if a.Depth != nil {
		s += fmt.Sprintf(", depth=%d", *a.Depth)
	}
	return s + ")"
}
