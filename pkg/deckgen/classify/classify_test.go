package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/extract"
)

func TestRoute(t *testing.T) {
	facts := []extract.Fact{
		{Kind: extract.Comparison, Line: 0, Seq: 0},
		{Kind: extract.Distribution, Line: 2, Seq: 1},
		{Kind: extract.Summary, Line: 3, Seq: 2},
		{Kind: extract.Summary, Line: 3, Seq: 3},
	}
	r := Route(facts, 5)

	assert.Len(t, r.Bar, 1)
	assert.Len(t, r.Pie, 1)
	assert.Len(t, r.Table, 2)
	assert.Equal(t, []int{1, 4}, r.Unmatched)
	assert.Equal(t, 3, r.Table[1].Seq)
}

func TestPolicyAllows(t *testing.T) {
	p := DefaultPolicy()

	assert.False(t, p.Allows(deck.VizBar, 1), "single bar is not a comparison")
	assert.True(t, p.Allows(deck.VizBar, 2))
	assert.False(t, p.Allows(deck.VizPie, 1))
	assert.True(t, p.Allows(deck.VizPie, 3))
	assert.True(t, p.Allows(deck.VizTable, 1))
	assert.False(t, p.Allows(deck.VizTable, 0))
	assert.False(t, p.Allows(deck.VizType(99), 10))
}
