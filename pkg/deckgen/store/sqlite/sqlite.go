package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
	"github.com/cognicore/deckgen/pkg/deckgen/store"
)

// sqliteStore implements the DeckStore interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.DeckStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS decks (
	id TEXT PRIMARY KEY,
	topic TEXT NOT NULL,
	slide_count INTEGER NOT NULL,
	level TEXT NOT NULL,
	slides TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decks_created ON decks(created_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveDeck inserts or replaces a deck
func (s *sqliteStore) SaveDeck(ctx context.Context, d deck.Deck) error {
	if d.ID == "" {
		return fmt.Errorf("%w: deck has no id", internalerr.ErrInvalidInput)
	}
	slidesJSON, err := json.Marshal(d.Slides)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO decks (id, topic, slide_count, level, slides, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	topic=excluded.topic,
	slide_count=excluded.slide_count,
	level=excluded.level,
	slides=excluded.slides,
	created_at=excluded.created_at;
`, d.ID, d.Topic, len(d.Slides), d.Level().String(), string(slidesJSON), formatTime(d.CreatedAt))
	return err
}

// GetDeck retrieves a deck by ID
func (s *sqliteStore) GetDeck(ctx context.Context, id string) (deck.Deck, error) {
	var d deck.Deck
	var slidesJSON, created string
	err := s.db.QueryRowContext(ctx, `
SELECT id, topic, slides, created_at FROM decks WHERE id = ?;
`, id).Scan(&d.ID, &d.Topic, &slidesJSON, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return deck.Deck{}, fmt.Errorf("deck %q: %w", id, internalerr.ErrNotFound)
	}
	if err != nil {
		return deck.Deck{}, err
	}
	if err := json.Unmarshal([]byte(slidesJSON), &d.Slides); err != nil {
		return deck.Deck{}, fmt.Errorf("decode slides of %q: %w", id, err)
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return deck.Deck{}, err
	}
	return d, nil
}

// ListDecks returns the newest decks first
func (s *sqliteStore) ListDecks(ctx context.Context, limit int) ([]store.Summary, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, topic, slide_count, level, created_at
FROM decks
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Summary
	for rows.Next() {
		var sum store.Summary
		var level, created string
		if err := rows.Scan(&sum.ID, &sum.Topic, &sum.Slides, &level, &created); err != nil {
			return nil, err
		}
		if err := sum.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, err
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Timestamps are stored as fixed-width UTC strings so lexical order matches
// chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
