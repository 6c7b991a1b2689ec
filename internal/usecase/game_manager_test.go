package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	mockedUseCase "github.com/rocketscienceinc/tictactoe-engine/mocks/usecase"
)

var (
	errStorageIsFull = errors.New("storage is full")
	errKeyboard      = errors.New("keyboard on fire")
)

// scriptedPlayer answers with a fixed list of moves; an entry of -1 reports an illegal move.
type scriptedPlayer struct {
	mark  entity.Mark
	moves []int
	err   error
}

func (that *scriptedPlayer) Mark() entity.Mark {
	return that.mark
}

func (that *scriptedPlayer) Entity() *entity.Player {
	return entity.NewHumanPlayer(that.mark)
}

func (that *scriptedPlayer) NextMove(_ context.Context, _ *entity.Game) (int, error) {
	if that.err != nil {
		return -1, that.err
	}

	cell := that.moves[0]
	that.moves = that.moves[1:]

	if cell < 0 {
		return -1, fmt.Errorf("%w: cell %d", apperror.ErrInvalidPosition, cell)
	}

	return cell, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGameManager_Play(t *testing.T) {
	ctx := context.Background()

	t.Run("X wins and the result is saved", func(t *testing.T) {
		// Given: two scripted players where X completes the top row
		resultRepo := mockedUseCase.NewMockresultRepo(t)
		manager := NewGameManager(discardLogger(), resultRepo, console.Discard())

		x := &scriptedPlayer{mark: entity.X, moves: []int{0, 1, 2}}
		o := &scriptedPlayer{mark: entity.O, moves: []int{3, 4}}

		resultRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(nil).
			Once()

		// When: playing the game
		game, err := manager.Play(ctx, x, o)

		// Then: X is the winner and the moves are recorded in order
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Equal(t, []int{0, 3, 1, 4, 2}, game.Moves)
		assert.Equal(t, "xxxoo    ", game.Board.String())
	})

	t.Run("Player order does not matter", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), nil, console.Discard())

		x := &scriptedPlayer{mark: entity.X, moves: []int{0, 1, 2}}
		o := &scriptedPlayer{mark: entity.O, moves: []int{3, 4}}

		game, err := manager.Play(ctx, o, x)

		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Winner)
	})

	t.Run("Illegal moves are re-prompted", func(t *testing.T) {
		// Given: X first sends an illegal move, O later tries an occupied cell
		var out bytes.Buffer
		manager := NewGameManager(discardLogger(), nil, console.New(&out, false))

		x := &scriptedPlayer{mark: entity.X, moves: []int{-1, 0, 1, 2}}
		o := &scriptedPlayer{mark: entity.O, moves: []int{3, 4}}

		// When: playing the game
		game, err := manager.Play(ctx, x, o)

		// Then: the game still ends normally and the illegal move was reported
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerX, game.Winner)
		assert.Equal(t, 1, strings.Count(out.String(), "illegal move"))
		assert.True(t, strings.HasSuffix(out.String(), "x wins\n"))
	})

	t.Run("Tie", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), nil, console.Discard())

		// x o x / x o o / o x x
		x := &scriptedPlayer{mark: entity.X, moves: []int{0, 2, 3, 7, 8}}
		o := &scriptedPlayer{mark: entity.O, moves: []int{1, 4, 5, 6}}

		game, err := manager.Play(ctx, x, o)

		require.NoError(t, err)
		assert.True(t, game.IsTie())
		assert.Equal(t, "xoxxoooxx", game.Board.String())
	})

	t.Run("Failing storage does not fail the game", func(t *testing.T) {
		resultRepo := mockedUseCase.NewMockresultRepo(t)
		manager := NewGameManager(discardLogger(), resultRepo, console.Discard())

		resultRepo.EXPECT().
			Save(mock.Anything, mock.AnythingOfType("*entity.Game")).
			Return(errStorageIsFull).
			Once()

		game, err := manager.Play(ctx,
			&scriptedPlayer{mark: entity.X, moves: []int{0, 1, 2}},
			&scriptedPlayer{mark: entity.O, moves: []int{3, 4}},
		)

		require.NoError(t, err)
		assert.True(t, game.IsFinished())
	})

	t.Run("Player error ends the game", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), nil, console.Discard())

		game, err := manager.Play(ctx,
			&scriptedPlayer{mark: entity.X, err: errKeyboard},
			&scriptedPlayer{mark: entity.O},
		)

		require.ErrorIs(t, err, errKeyboard)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Canceled context stops before the next move", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		manager := NewGameManager(discardLogger(), nil, console.Discard())

		_, err := manager.Play(canceled,
			&scriptedPlayer{mark: entity.X, moves: []int{0}},
			&scriptedPlayer{mark: entity.O, moves: []int{1}},
		)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Same mark twice", func(t *testing.T) {
		manager := NewGameManager(discardLogger(), nil, console.Discard())

		_, err := manager.Play(ctx, &scriptedPlayer{mark: entity.X}, &scriptedPlayer{mark: entity.X})

		assert.ErrorIs(t, err, ErrSameMark)
	})
}

func TestGameManager_PlayAgainstEngine(t *testing.T) {
	for _, seed := range []int64{1, 11, 42} {
		// Given: a human who opens in the centre, repeats it, types garbage, then tries every cell in order.
		// Every free cell is still ahead in that list, so the input cannot run out before the game ends.
		var out bytes.Buffer
		view := console.New(&out, false)
		manager := NewGameManager(discardLogger(), nil, view)

		session := engine.NewSession(engine.WithSeed(seed))
		human := service.NewHumanPlayer(entity.X, strings.NewReader("4\n4\nx\n0\n1\n2\n3\n5\n6\n7\n8\n"), view)
		bot := service.NewBotPlayer(discardLogger(), entity.O, session, view)

		// When: playing the game out
		game, err := manager.Play(context.Background(), human, bot)

		// Then: it finishes, the engine never loses and the bad input was re-prompted
		require.NoError(t, err, "seed %d", seed)
		assert.True(t, game.IsFinished())
		assert.NotEqual(t, entity.PlayerX, game.Winner)
		assert.GreaterOrEqual(t, strings.Count(out.String(), "illegal move"), 2)
	}
}
