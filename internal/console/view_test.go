package console

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestView_ShowBoard(t *testing.T) {
	// Given: a plain text view
	var buf bytes.Buffer
	view := New(&buf, false)

	// When: showing a board in progress
	view.ShowBoard(entity.MustParseBoard("xox xooxo"))

	// Then: three framed rows with blanks for empty cells
	assert.Equal(t, "+---+\n|xox|\n| xo|\n|oxo|\n+---+\n", buf.String())
}

func TestView_Messages(t *testing.T) {
	t.Run("Prompt", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).Prompt(entity.X)

		assert.Equal(t, "X's move [0-8]: ", buf.String())
	})

	t.Run("Engine move clears the indicator", func(t *testing.T) {
		var buf bytes.Buffer
		view := New(&buf, false)

		view.Thinking()
		view.MoveChosen(entity.O, 4)

		assert.Equal(t, "CALCULATING\r           \rO's move [0-8]: 4\n", buf.String())
	})

	t.Run("Illegal move", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).IllegalMove(errors.New("cell is already occupied"))

		assert.Equal(t, "illegal move: cell is already occupied\n", buf.String())
	})
}

func TestView_Result(t *testing.T) {
	t.Run("Winner", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).Result(&entity.Game{Status: entity.StatusFinished, Winner: entity.PlayerO})

		assert.Equal(t, "o wins\n", buf.String())
	})

	t.Run("Tie", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).Result(&entity.Game{Status: entity.StatusFinished, Winner: entity.PlayerTie})

		assert.Equal(t, "Tie\n", buf.String())
	})

	t.Run("Summary", func(t *testing.T) {
		var buf bytes.Buffer
		New(&buf, false).Summary(entity.Stats{XWins: 1, Draws: 3})

		assert.Equal(t, "games: 4, x wins: 1, o wins: 0, draws: 3\n", buf.String())
	})
}

func TestDiscard(t *testing.T) {
	view := Discard()

	assert.NotPanics(t, func() {
		view.ShowBoard(entity.Board{})
		view.Result(&entity.Game{Winner: entity.PlayerTie})
	})
}
