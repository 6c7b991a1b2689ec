package arena

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var errBoom = errors.New("boom")

type failingManager struct{}

func (failingManager) Play(context.Context, usecase.Player, usecase.Player) (*entity.Game, error) {
	return nil, errBoom
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArena_Run(t *testing.T) {
	t.Run("Perfect play always draws", func(t *testing.T) {
		for _, seed := range []int64{0, 1, 42, 1000, 987654321} {
			// Given: an arena of engine-vs-engine games with a fresh session
			logger := discardLogger()
			manager := usecase.NewGameManager(logger, nil, console.Discard())
			arena := New(logger, manager, engine.NewSession(), Config{Games: 20, Workers: 4, Seed: seed})

			// When: running all games
			stats, err := arena.Run(context.Background())

			// Then: every game is a draw regardless of the tie-breaks
			require.NoError(t, err)
			assert.Equal(t, entity.Stats{Draws: 20}, stats, "seed %d", seed)
		}
	})

	t.Run("Sequential run", func(t *testing.T) {
		logger := discardLogger()
		manager := usecase.NewGameManager(logger, nil, console.Discard())
		arena := New(logger, manager, engine.NewSession(), Config{Games: 5, Seed: 7})

		stats, err := arena.Run(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 5, stats.Draws)
		assert.Equal(t, stats, arena.Stats())
	})

	t.Run("Each run counts its own games", func(t *testing.T) {
		// Given: an arena that has already run once
		logger := discardLogger()
		manager := usecase.NewGameManager(logger, nil, console.Discard())
		arena := New(logger, manager, engine.NewSession(), Config{Games: 3, Workers: 2, Seed: 3})

		_, err := arena.Run(context.Background())
		require.NoError(t, err)

		// When: running it again
		stats, err := arena.Run(context.Background())

		// Then: only the second run is reported
		require.NoError(t, err)
		assert.Equal(t, entity.Stats{Draws: 3}, stats)
		assert.Equal(t, stats, arena.Stats())
	})

	t.Run("Game error stops the arena", func(t *testing.T) {
		arena := New(discardLogger(), failingManager{}, engine.NewSession(), Config{Games: 3, Workers: 2})

		stats, err := arena.Run(context.Background())

		require.ErrorIs(t, err, errBoom)
		assert.Zero(t, stats.Total())
	})

	t.Run("Canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		logger := discardLogger()
		manager := usecase.NewGameManager(logger, nil, console.Discard())
		arena := New(logger, manager, engine.NewSession(), Config{Games: 3})

		_, err := arena.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
