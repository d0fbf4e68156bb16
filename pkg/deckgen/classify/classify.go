// Package classify routes extracted facts to visualization categories.
package classify

import (
	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
)

// Routed holds facts grouped by the chart they can feed, each in Seq order.
type Routed struct {
	Bar   []extract.Fact
	Pie   []extract.Fact
	Table []extract.Fact

	// Unmatched lists normalized line indexes that produced no fact.
	// Those lines only reach the deck as bullets.
	Unmatched []int
}

// Route maps comparison facts to bar candidates, distribution facts to pie
// candidates and summary facts to table candidates.
func Route(facts []extract.Fact, lineCount int) Routed {
	var r Routed
	matched := make(map[int]bool, len(facts))
	for _, f := range facts {
		matched[f.Line] = true
		switch f.Kind {
		case extract.Comparison:
			r.Bar = append(r.Bar, f)
		case extract.Distribution:
			r.Pie = append(r.Pie, f)
		case extract.Summary:
			r.Table = append(r.Table, f)
		}
	}
	for i := 0; i < lineCount; i++ {
		if !matched[i] {
			r.Unmatched = append(r.Unmatched, i)
		}
	}
	return r
}

// Policy holds the minimum entries a chart needs to be emitted.
// A single bar or a single slice is not a comparison.
type Policy struct {
	MinBar   int
	MinPie   int
	MinTable int
}

// DefaultPolicy returns the built-in thresholds
func DefaultPolicy() Policy {
	return Policy{MinBar: 2, MinPie: 2, MinTable: 1}
}

// Allows reports whether a chart of type t with n entries may be emitted.
func (p Policy) Allows(t deck.VizType, n int) bool {
	switch t {
	case deck.VizBar:
		return n >= p.MinBar
	case deck.VizPie:
		return n >= p.MinPie
	case deck.VizTable:
		return n >= p.MinTable
	}
	return false
}
