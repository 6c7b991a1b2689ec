package entity

import (
	"fmt"
	"iter"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

// Mark is the content of a single cell. The numeric values double as base-3 digits
// when boards are ordered for canonicalization.
type Mark uint8

const (
	Empty Mark = iota
	X
	O
)

// BoardSize is the number of cells on the board.
const BoardSize = 9

// Other returns the opponent of a player mark.
func (that Mark) Other() Mark {
	if that == X {
		return O
	}
	return X
}

func (that Mark) String() string {
	switch that {
	case X:
		return "x"
	case O:
		return "o"
	default:
		return " "
	}
}

// Upper renders a player mark the way prompts and results name players.
func (that Mark) Upper() string {
	return strings.ToUpper(that.String())
}

func (that Mark) MarshalText() ([]byte, error) {
	if that == Empty {
		return []byte{}, nil
	}
	return []byte(that.String()), nil
}

func (that *Mark) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*that = Empty
		return nil
	}

	mark, err := ParseMark(string(text))
	if err != nil {
		return err
	}
	*that = mark
	return nil
}

// ParseMark parses "x" or "o" in any case.
func ParseMark(s string) (Mark, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return X, nil
	case "o":
		return O, nil
	default:
		return Empty, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
}

// Board is a 3x3 grid stored row-major. It is a value: every mutation returns a new board.
type Board [BoardSize]Mark

// ParseBoard reads 9 characters, one per cell: x, o, or a space (a dot is also accepted as empty).
func ParseBoard(s string) (Board, error) {
	var board Board

	runes := []rune(s)
	if len(runes) != BoardSize {
		return board, fmt.Errorf("%w: expected %d cells, got %d", apperror.ErrInvalidBoard, BoardSize, len(runes))
	}

	for i, r := range runes {
		switch r {
		case 'x', 'X':
			board[i] = X
		case 'o', 'O':
			board[i] = O
		case ' ', '.':
			board[i] = Empty
		default:
			return board, fmt.Errorf("%w: unexpected %q at cell %d", apperror.ErrInvalidBoard, r, i)
		}
	}

	return board, nil
}

// MustParseBoard is ParseBoard for literals known to be valid.
func MustParseBoard(s string) Board {
	board, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return board
}

func (that Board) String() string {
	var sb strings.Builder
	sb.Grow(BoardSize)
	for _, cell := range that {
		sb.WriteString(cell.String())
	}
	return sb.String()
}

func (that Board) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Board) UnmarshalText(text []byte) error {
	board, err := ParseBoard(string(text))
	if err != nil {
		return err
	}
	*that = board
	return nil
}

// Put places mark at pos. The caller guarantees pos is in range and the cell is empty.
func (that Board) Put(mark Mark, pos int) Board {
	that[pos] = mark
	return that
}

// FreePositions yields the empty cells in ascending order.
func (that Board) FreePositions() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i, cell := range that {
			if cell != Empty {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}

// Successors yields the board after each possible move of toMove, in FreePositions order.
func (that Board) Successors(toMove Mark) iter.Seq[Board] {
	return func(yield func(Board) bool) {
		for pos := range that.FreePositions() {
			if !yield(that.Put(toMove, pos)) {
				return
			}
		}
	}
}

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}
	return true
}
