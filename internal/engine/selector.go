package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Rand picks tie-breaks. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// MoveScore is the value of playing at Position, for the player who plays it.
type MoveScore struct {
	Position int
	Score    Score
}

type Selector struct {
	logger    *slog.Logger
	evaluator *Evaluator
	workers   int

	mu  sync.Mutex
	rnd Rand
}

func NewSelector(logger *slog.Logger, evaluator *Evaluator, rnd Rand, workers int) *Selector {
	return &Selector{
		logger:    logger,
		evaluator: evaluator,
		workers:   workers,
		rnd:       rnd,
	}
}

// Evaluate scores every free cell of board for player, in ascending cell order.
// Each move is valued after it is played, with the opponent to move.
func (that *Selector) Evaluate(board entity.Board, player entity.Mark) []MoveScore {
	positions := slices.Collect(board.FreePositions())
	scores := make([]MoveScore, len(positions))

	score := func(i int) {
		pos := positions[i]
		scores[i] = MoveScore{
			Position: pos,
			Score:    that.evaluator.Score(board.Put(player, pos), player, player.Other()),
		}
	}

	if that.workers <= 1 || len(positions) < 2 {
		for i := range positions {
			score(i)
		}
		return scores
	}

	var group errgroup.Group
	group.SetLimit(that.workers)
	for i := range positions {
		group.Go(func() error {
			score(i)
			return nil
		})
	}
	_ = group.Wait() // scoring cannot fail

	return scores
}

// BestMove returns one of the best cells for player, chosen uniformly among equal scores.
func (that *Selector) BestMove(board entity.Board, player entity.Mark) (int, error) {
	if board.Finished() {
		return -1, fmt.Errorf("%w: board %q", apperror.ErrEmptyMoveSet, board.String())
	}

	scores := that.Evaluate(board, player)

	best := Loss
	for _, move := range scores {
		best = max(best, move.Score)
	}

	candidates := make([]int, 0, len(scores))
	for _, move := range scores {
		if move.Score == best {
			candidates = append(candidates, move.Position)
		}
	}

	that.mu.Lock()
	choice := candidates[that.rnd.Intn(len(candidates))]
	that.mu.Unlock()

	that.logger.Debug("move selected",
		"board", board.String(),
		"player", player.Upper(),
		"position", choice,
		"score", float64(best),
		"candidates", candidates,
	)

	return choice, nil
}
