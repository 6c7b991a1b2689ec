package engine

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/symmetry"
)

type canonicalizer interface {
	Canonical(board entity.Board) entity.Board
}

// Evaluator runs exhaustive minimax to the end of the game. Results are memoized on the
// canonical form of the board, which is sound because the value of a position does not
// change under rotation or reflection.
type Evaluator struct {
	canon canonicalizer
	cache *Cache
}

func NewEvaluator(cache *Cache, canon canonicalizer) *Evaluator {
	if cache == nil {
		cache = NewCache()
	}
	if canon == nil {
		canon = symmetry.NewCanonicalizer()
	}

	return &Evaluator{
		canon: canon,
		cache: cache,
	}
}

// Score returns the value of board for forPlayer when toMove plays next and both sides play perfectly.
func (that *Evaluator) Score(board entity.Board, forPlayer, toMove entity.Mark) Score {
	if winner, ok := board.Winner(); ok {
		if winner == forPlayer {
			return Win
		}
		return Loss
	}

	key := cacheKey{
		board:     that.canon.Canonical(board),
		forPlayer: forPlayer,
		toMove:    toMove,
	}
	if score, ok := that.cache.load(key); ok {
		return score
	}

	maximize := toMove == forPlayer

	// stays Draw when the board is full
	result, seen := Draw, false
	for next := range board.Successors(toMove) {
		score := that.Score(next, forPlayer, toMove.Other())

		switch {
		case !seen:
			result, seen = score, true
		case maximize && score > result:
			result = score
		case !maximize && score < result:
			result = score
		}
	}

	that.cache.store(key, result)

	return result
}
