// Package arena plays the engine against itself.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-engine/internal/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

type gamePlayer interface {
	Play(ctx context.Context, first, second usecase.Player) (*entity.Game, error)
}

type Config struct {
	Games   int
	Workers int
	Seed    int64
}

type Arena struct {
	logger  *slog.Logger
	manager gamePlayer
	session *engine.Session
	config  Config

	xWins atomic.Int64
	oWins atomic.Int64
	draws atomic.Int64
}

func New(logger *slog.Logger, manager gamePlayer, session *engine.Session, config Config) *Arena {
	if config.Workers < 1 {
		config.Workers = 1
	}

	return &Arena{
		logger:  logger.With("component", "arena"),
		manager: manager,
		session: session,
		config:  config,
	}
}

// Run plays the configured number of games. Both sides share the session's memo state;
// every side of every game breaks ties with its own seeded source.
// The returned stats cover this run only.
func (that *Arena) Run(ctx context.Context) (entity.Stats, error) {
	that.reset()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(that.config.Workers)

	for i := range that.config.Games {
		group.Go(func() error {
			return that.playOne(ctx, i)
		})
	}

	err := group.Wait()

	stats := that.Stats()
	that.logger.Info("arena finished",
		"games", stats.Total(),
		"x_wins", stats.XWins,
		"o_wins", stats.OWins,
		"draws", stats.Draws,
		"engine", that.session.Stats(),
	)

	if err != nil {
		return stats, fmt.Errorf("arena stopped: %w", err)
	}

	return stats, nil
}

func (that *Arena) playOne(ctx context.Context, index int) error {
	seed := that.config.Seed + 2*int64(index)

	x := service.NewBotPlayer(that.logger, entity.X, that.fork(seed), console.Discard())
	o := service.NewBotPlayer(that.logger, entity.O, that.fork(seed+1), console.Discard())

	game, err := that.manager.Play(ctx, x, o)
	if err != nil {
		return fmt.Errorf("game %d: %w", index, err)
	}

	that.record(game)

	return nil
}

func (that *Arena) fork(seed int64) *engine.Session {
	return that.session.Fork(rand.New(rand.NewSource(seed))) //nolint: gosec // tie-breaks only
}

func (that *Arena) record(game *entity.Game) {
	switch game.Winner {
	case entity.PlayerX:
		that.xWins.Add(1)
	case entity.PlayerO:
		that.oWins.Add(1)
	case entity.PlayerTie:
		that.draws.Add(1)
	}
}

func (that *Arena) reset() {
	that.xWins.Store(0)
	that.oWins.Store(0)
	that.draws.Store(0)
}

// Stats returns the results counted so far in the current or last run.
func (that *Arena) Stats() entity.Stats {
	return entity.Stats{
		XWins: int(that.xWins.Load()),
		OWins: int(that.oWins.Load()),
		Draws: int(that.draws.Load()),
	}
}
