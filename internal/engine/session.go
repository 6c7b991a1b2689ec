package engine

import (
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/symmetry"
)

type options struct {
	logger  *slog.Logger
	rnd     Rand
	workers int
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRand replaces the tie-break source, e.g. with a fixed sequence in tests.
func WithRand(rnd Rand) Option {
	return func(o *options) {
		o.rnd = rnd
	}
}

// WithSeed makes tie-breaks reproducible.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed))) //nolint: gosec // tie-breaks only
}

// WithWorkers scores root moves concurrently on up to n goroutines.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Session owns the memo state of one game session. Drop it to release the caches.
type Session struct {
	cache     *Cache
	canon     *symmetry.Canonicalizer
	evaluator *Evaluator
	selector  *Selector
}

func NewSession(opts ...Option) *Session {
	o := &options{workers: 1}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // tie-breaks only
	}

	logger := o.logger.With("component", "engine")
	cache := NewCache()
	canon := symmetry.NewCanonicalizer()
	evaluator := NewEvaluator(cache, canon)

	return &Session{
		cache:     cache,
		canon:     canon,
		evaluator: evaluator,
		selector:  NewSelector(logger, evaluator, o.rnd, o.workers),
	}
}

// Fork returns a session that shares this session's memo state but breaks ties with rnd.
// Forks may be used concurrently with each other.
func (that *Session) Fork(rnd Rand) *Session {
	return &Session{
		cache:     that.cache,
		canon:     that.canon,
		evaluator: that.evaluator,
		selector:  NewSelector(that.selector.logger, that.evaluator, rnd, that.selector.workers),
	}
}

func (that *Session) Score(board entity.Board, forPlayer, toMove entity.Mark) Score {
	return that.evaluator.Score(board, forPlayer, toMove)
}

func (that *Session) BestMove(board entity.Board, player entity.Mark) (int, error) {
	return that.selector.BestMove(board, player)
}

func (that *Session) Evaluate(board entity.Board, player entity.Mark) []MoveScore {
	return that.selector.Evaluate(board, player)
}

// Stats reports memo sizes and cache effectiveness.
func (that *Session) Stats() SessionStats {
	return SessionStats{
		CacheEntries:     that.cache.Len(),
		CacheHits:        that.cache.Hits(),
		CacheMisses:      that.cache.Misses(),
		CanonicalEntries: that.canon.Len(),
	}
}

type SessionStats struct {
	CacheEntries     int
	CacheHits        uint64
	CacheMisses      uint64
	CanonicalEntries int
}

func (that SessionStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("cache_entries", that.CacheEntries),
		slog.Uint64("cache_hits", that.CacheHits),
		slog.Uint64("cache_misses", that.CacheMisses),
		slog.Int("canonical_entries", that.CanonicalEntries),
	)
}
