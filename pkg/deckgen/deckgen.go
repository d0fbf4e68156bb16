package deckgen

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/cognicore/deckgen/pkg/deckgen/classify"
	"github.com/cognicore/deckgen/pkg/deckgen/config"
	"github.com/cognicore/deckgen/pkg/deckgen/deck"
	"github.com/cognicore/deckgen/pkg/deckgen/diag"
	"github.com/cognicore/deckgen/pkg/deckgen/ingest"
	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
	"github.com/cognicore/deckgen/pkg/deckgen/plan"
	"github.com/cognicore/deckgen/pkg/deckgen/store"
)

// Engine is the deck composition facade
type Engine struct {
	comp      *config.Components
	log       *zap.Logger
	collector diag.Collector
	store     store.DeckStore
	cache     *lru.Cache[string, composed]
	now       func() time.Time
}

// Options configures an Engine. Every field is optional.
type Options struct {
	Config    *config.Config // nil selects config.Default()
	Logger    *zap.Logger    // nil disables logging
	Collector diag.Collector // receives the record of every run
	Store     store.DeckStore
	CacheSize int // entries in the composition cache; 0 disables it
	Now       func() time.Time
}

// composed is a cached, unstamped composition.
type composed struct {
	deck   deck.Deck
	record diag.Record
}

// New creates an Engine with the given dependencies
func New(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		comp:      config.Build(cfg),
		log:       opts.Logger,
		collector: opts.Collector,
		store:     opts.Store,
		now:       opts.Now,
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, composed](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: cache size: %v", internalerr.ErrInvalidConfig, err)
		}
		e.cache = cache
	}
	return e, nil
}

// Close releases the store, if any
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Request is one composition request. A nil Research means no research was
// supplied; an empty string is treated the same way.
type Request struct {
	Topic      string
	SlideCount int
	Research   *string
}

// Result carries the deck and the diagnostics of the run that produced it
type Result struct {
	Deck        deck.Deck
	Diagnostics diag.Record
}

// Compose builds a deck of exactly max(1, SlideCount) slides. It never fails:
// missing or unusable research degrades to placeholder content.
func (e *Engine) Compose(req Request) Result {
	var key string
	if e.cache != nil {
		key = cacheKey(req)
		if hit, ok := e.cache.Get(key); ok {
			res := Result{Deck: hit.deck.Clone(), Diagnostics: hit.record}
			res.Diagnostics.CacheHit = true
			return e.finish(res)
		}
	}

	d, rec := e.compose(req)
	if e.cache != nil {
		e.cache.Add(key, composed{deck: d.Clone(), record: rec})
	}
	return e.finish(Result{Deck: d, Diagnostics: rec})
}

// ComposeAndArchive composes a deck and saves it to the configured store.
func (e *Engine) ComposeAndArchive(ctx context.Context, req Request) (Result, error) {
	if e.store == nil {
		return Result{}, fmt.Errorf("%w: no deck store configured", internalerr.ErrStoreUnavailable)
	}
	res := e.Compose(req)
	if err := e.store.SaveDeck(ctx, res.Deck); err != nil {
		return res, fmt.Errorf("save deck %s: %w", res.Deck.ID, err)
	}
	e.log.Info("archived deck",
		zap.String("id", res.Deck.ID),
		zap.String("topic", res.Deck.Topic),
	)
	return res, nil
}

// Deck loads an archived deck.
func (e *Engine) Deck(ctx context.Context, id string) (deck.Deck, error) {
	if e.store == nil {
		return deck.Deck{}, fmt.Errorf("%w: no deck store configured", internalerr.ErrStoreUnavailable)
	}
	return e.store.GetDeck(ctx, id)
}

// List returns summaries of archived decks, newest first.
func (e *Engine) List(ctx context.Context, limit int) ([]store.Summary, error) {
	if e.store == nil {
		return nil, fmt.Errorf("%w: no deck store configured", internalerr.ErrStoreUnavailable)
	}
	return e.store.ListDecks(ctx, limit)
}

func (e *Engine) compose(req Request) (deck.Deck, diag.Record) {
	var rec diag.Record
	c := e.comp

	doc := ingest.NewResearchDocument(req.Topic, req.Research)
	norm := c.Normalizer.Normalize(doc)
	rec.Lines = len(norm.Lines)

	facts := c.Extractor.Extract(norm.Numeric())
	routed := classify.Route(facts, len(norm.Lines))
	rec.UnmatchedLines = len(routed.Unmatched)
	rec.Comparisons = len(routed.Bar)
	rec.Distributions = len(routed.Pie)
	rec.Summaries = len(routed.Table)

	ranked := c.Ranker.Rank(routed)
	rec.DedupDrops = ranked.Stats.DedupDrops
	rec.Truncated = ranked.Stats.Truncated
	rec.FamilyDrops = ranked.Stats.FamilyDrops

	visuals := c.Viz.Build(ranked)
	rec.Rejected = visuals.Rejected

	bullets := ingest.BuildBullets(norm, c.MinBulletChars)
	rec.Bullets = bullets.Len()
	rec.NoData = norm.NoData || (len(facts) == 0 && bullets.Len() == 0)

	d, st := c.Planner.Plan(plan.Input{
		Topic:      doc.Topic,
		SlideCount: req.SlideCount,
		Research:   doc.HasText(),
		NoData:     rec.NoData,
		Visuals:    visuals.Specs,
		Bullets:    bullets.Items,
	})
	rec.KeyFindings = st.KeyFindings
	rec.LeftoverUnused = st.LeftoverUnused
	rec.VisualsDropped = st.VisualsDropped
	rec.Placeholders = st.Placeholders
	rec.TopicDefaulted = st.TopicDefaulted
	for _, v := range d.Visuals() {
		rec.VisualsEmitted = append(rec.VisualsEmitted, v.Type)
	}
	return d, rec
}

// finish stamps the deck and reports the run.
func (e *Engine) finish(res Result) Result {
	e.comp.Planner.Stamp(&res.Deck, e.now())
	level := res.Deck.Level()

	if e.collector != nil {
		e.collector.Collect(res.Diagnostics)
		if obs, ok := e.collector.(interface{ Observe(deck.Level) }); ok {
			obs.Observe(level)
		}
	}

	rec := res.Diagnostics
	e.log.Debug("composed deck",
		zap.String("id", res.Deck.ID),
		zap.String("topic", res.Deck.Topic),
		zap.Int("slides", len(res.Deck.Slides)),
		zap.Stringer("level", level),
		zap.Int("lines", rec.Lines),
		zap.Int("facts", rec.Facts()),
		zap.Int("bullets", rec.Bullets),
		zap.Int("key_findings", rec.KeyFindings),
		zap.Int("dedup_drops", rec.DedupDrops),
		zap.Int("truncated", rec.Truncated),
		zap.Int("placeholders", rec.Placeholders),
		zap.Bool("no_data", rec.NoData),
		zap.Bool("cache_hit", rec.CacheHit),
	)
	if len(rec.VisualsDropped) > 0 {
		e.log.Debug("visualizations dropped for slide budget",
			zap.Int("slide_count", len(res.Deck.Slides)),
			zap.Int("dropped", len(rec.VisualsDropped)),
		)
	}
	return res
}

// cacheKey hashes every input that influences the composition.
func cacheKey(req Request) string {
	h := sha256.New()
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(int64(req.SlideCount)))
	h.Write(n[:])
	fmt.Fprintf(h, "%d:%s", len(req.Topic), req.Topic)
	if req.Research != nil {
		h.Write([]byte{1})
		h.Write([]byte(*req.Research))
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Compose builds a deck with the default configuration. It is safe for
// concurrent use and shares nothing between calls except the ID generator.
func Compose(topic string, slideCount int, research *string) deck.Deck {
	defaultOnce.Do(func() {
		e, err := New(Options{})
		if err != nil {
			panic(fmt.Sprintf("deckgen: default config rejected: %v", err))
		}
		defaultEngine = e
	})
	return defaultEngine.Compose(Request{
		Topic:      topic,
		SlideCount: slideCount,
		Research:   research,
	}).Deck
}
