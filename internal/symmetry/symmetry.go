// Package symmetry collapses boards that differ only by a rotation or reflection
// of the grid onto one representative.
package symmetry

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Each table maps a destination cell to the source cell it is read from.
var (
	// quarter turn clockwise
	rotation = [entity.BoardSize]int{6, 3, 0, 7, 4, 1, 8, 5, 2}
	// top row <-> bottom row
	reflection = [entity.BoardSize]int{6, 7, 8, 3, 4, 5, 0, 1, 2}
)

func permute(board entity.Board, table [entity.BoardSize]int) entity.Board {
	var out entity.Board
	for dst, src := range table {
		out[dst] = board[src]
	}
	return out
}

// Rotate turns the board a quarter turn clockwise.
func Rotate(board entity.Board) entity.Board {
	return permute(board, rotation)
}

// Mirror swaps the top and bottom rows.
func Mirror(board entity.Board) entity.Board {
	return permute(board, reflection)
}

// Value reads the cells as base-3 digits, cell 0 least significant.
// Distinct boards always get distinct values.
func Value(board entity.Board) int {
	value := 0
	for i := len(board) - 1; i >= 0; i-- {
		value = value*3 + int(board[i])
	}
	return value
}

// Boards returns every distinct board reachable through rotations and the mirror,
// the board itself first.
func Boards(board entity.Board) []entity.Board {
	boards := make([]entity.Board, 0, 8)

	add := func(b entity.Board) {
		for _, seen := range boards {
			if seen == b {
				return
			}
		}
		boards = append(boards, b)
	}

	for range 4 {
		add(board)
		add(Mirror(board))
		board = Rotate(board)
	}

	return boards
}

// Canonical returns the symmetric board with the lowest Value.
func Canonical(board entity.Board) entity.Board {
	best, bestValue := board, Value(board)
	for _, candidate := range Boards(board)[1:] {
		if value := Value(candidate); value < bestValue {
			best, bestValue = candidate, value
		}
	}
	return best
}

// Canonicalizer memoizes Canonical. It is safe for concurrent use.
type Canonicalizer struct {
	mu   sync.RWMutex
	memo map[entity.Board]entity.Board
}

func NewCanonicalizer() *Canonicalizer {
	return &Canonicalizer{
		memo: make(map[entity.Board]entity.Board),
	}
}

func (that *Canonicalizer) Canonical(board entity.Board) entity.Board {
	that.mu.RLock()
	canonical, ok := that.memo[board]
	that.mu.RUnlock()
	if ok {
		return canonical
	}

	canonical = Canonical(board)

	that.mu.Lock()
	that.memo[board] = canonical
	that.mu.Unlock()

	return canonical
}

// Len returns the number of memoized boards.
func (that *Canonicalizer) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()
	return len(that.memo)
}
