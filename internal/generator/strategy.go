// Package generator produces multiple-choice quiz drafts for a course.
package generator

import (
	"math/rand/v2"

	"github.com/teachtool/quizengine/internal/catalog"
	"github.com/teachtool/quizengine/internal/domain/course"
	"github.com/teachtool/quizengine/internal/domain/quiz"
)

// Strategy produces up to count drafts. Implementations never fail; a lack of
// usable source text degrades to generic items.
type Strategy interface {
	Name() string
	Generate(text string, count int) []quiz.Draft
}

// Selector maps a course kind to its generation strategy.
type Selector struct {
	strategies map[course.Kind]Strategy
	fallback   Strategy
}

// NewSelector wires one fixed-bank strategy per fixed bank in the catalog and
// a heuristic strategy for every other kind. rng may be nil.
func NewSelector(c *catalog.Catalog, rng *rand.Rand) *Selector {
	s := &Selector{
		strategies: make(map[course.Kind]Strategy, len(c.FixedBanks)),
		fallback:   NewHeuristic(rng),
	}
	for kind, rows := range c.FixedBanks {
		s.strategies[kind] = NewFixedBank(string(kind), rows)
	}
	return s
}

// For returns the strategy registered for kind, or the heuristic strategy.
func (s *Selector) For(kind course.Kind) Strategy {
	if st, ok := s.strategies[kind]; ok {
		return st
	}
	return s.fallback
}

// ForLabel resolves the course kind from a label and returns its strategy.
func (s *Selector) ForLabel(label string) Strategy {
	return s.For(course.KindOf(label))
}
