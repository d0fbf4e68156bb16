package store

import (
	"context"
	"time"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
)

// DeckStore persists composed decks so they can be listed and rendered later
type DeckStore interface {
	Close() error

	// SaveDeck inserts or replaces a deck keyed by its ID.
	SaveDeck(ctx context.Context, d deck.Deck) error
	// GetDeck returns internalerr.ErrNotFound for an unknown ID.
	GetDeck(ctx context.Context, id string) (deck.Deck, error)
	// ListDecks returns up to limit summaries, newest first.
	ListDecks(ctx context.Context, limit int) ([]Summary, error)
}

// Summary is the list view of a stored deck
type Summary struct {
	ID        string
	Topic     string
	Slides    int
	Level     deck.Level
	CreatedAt time.Time
}

// Summarize builds the list view of a deck
func Summarize(d deck.Deck) Summary {
	return Summary{
		ID:        d.ID,
		Topic:     d.Topic,
		Slides:    len(d.Slides),
		Level:     d.Level(),
		CreatedAt: d.CreatedAt,
	}
}

// DefaultListLimit applies when a non-positive limit is passed to ListDecks.
const DefaultListLimit = 20
