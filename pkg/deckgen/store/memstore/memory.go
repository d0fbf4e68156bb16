package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
	"github.com/cognicore/deckgen/pkg/deckgen/store"
)

// Store is an in-memory implementation of store.DeckStore for tests.
type Store struct {
	mu    sync.RWMutex
	decks map[string]deck.Deck
	order map[string]int
	seq   int
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		decks: make(map[string]deck.Deck),
		order: make(map[string]int),
	}
}

// Close implements store.DeckStore.
func (s *Store) Close() error { return nil }

// SaveDeck stores a copy of d.
func (s *Store) SaveDeck(ctx context.Context, d deck.Deck) error {
	if d.ID == "" {
		return fmt.Errorf("%w: deck has no id", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.order[d.ID]; !ok {
		s.seq++
		s.order[d.ID] = s.seq
	}
	s.decks[d.ID] = d.Clone()
	return nil
}

// GetDeck implements store.DeckStore.
func (s *Store) GetDeck(ctx context.Context, id string) (deck.Deck, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.decks[id]
	if !ok {
		return deck.Deck{}, fmt.Errorf("deck %q: %w", id, internalerr.ErrNotFound)
	}
	return d.Clone(), nil
}

// ListDecks returns summaries ordered by CreatedAt descending, most recently
// saved first on ties.
func (s *Store) ListDecks(ctx context.Context, limit int) ([]store.Summary, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Summary, 0, len(s.decks))
	for _, d := range s.decks {
		out = append(out, store.Summarize(d))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return s.order[out[i].ID] > s.order[out[j].ID]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
