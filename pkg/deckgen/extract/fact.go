// Package extract recognises structured facts in normalized research text.
//
// Extraction is a table of named rules, each a pattern with named capture
// groups. Rules are independent: one line may satisfy several of them.
package extract

import "fmt"

// Kind is the structural category of a fact
type Kind int

const (
	Comparison Kind = iota + 1
	Distribution
	Summary
)

func (k Kind) String() string {
	switch k {
	case Comparison:
		return "comparison"
	case Distribution:
		return "distribution"
	case Summary:
		return "summary"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Entity is a (label, value) pair inside a fact
type Entity struct {
	Label string
	Value int64
}

// Fact is one recognised structure. Comparison and summary facts carry a
// single entity; a distribution fact carries one entity per category seen in
// its window.
type Fact struct {
	Kind      Kind
	Rule      string
	Family    string // distribution family name
	Qualifier string // trailing words of a comparison, e.g. "total medals"
	Entities  []Entity
	Line      int // index of the normalized line
	Seq       int // global extraction order, the first-seen tie-break
}
