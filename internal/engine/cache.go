package engine

import (
	"sync"
	"sync/atomic"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Score is the value of a position for the player it is scored for.
type Score float64

const (
	Loss Score = 0
	Draw Score = 0.5
	Win  Score = 1
)

type cacheKey struct {
	board     entity.Board // canonical form
	forPlayer entity.Mark
	toMove    entity.Mark
}

// Cache memoizes evaluator results for one session. Entries are never evicted or overwritten
// with a different value, so concurrent stores of the same key are harmless.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]Score

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[cacheKey]Score),
	}
}

func (that *Cache) load(key cacheKey) (Score, bool) {
	that.mu.RLock()
	score, ok := that.entries[key]
	that.mu.RUnlock()

	if ok {
		that.hits.Add(1)
	} else {
		that.misses.Add(1)
	}

	return score, ok
}

func (that *Cache) store(key cacheKey, score Score) {
	that.mu.Lock()
	that.entries[key] = score
	that.mu.Unlock()
}

func (that *Cache) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return len(that.entries)
}

// Hits and Misses count lookups since the cache was created.
func (that *Cache) Hits() uint64 {
	return that.hits.Load()
}

func (that *Cache) Misses() uint64 {
	return that.misses.Load()
}
