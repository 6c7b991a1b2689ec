package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type bestMover interface {
	BestMove(board entity.Board, player entity.Mark) (int, error)
}

type thinkingView interface {
	Thinking()
	MoveChosen(mark entity.Mark, cell int)
}

// BotPlayer plays perfectly using the engine's move selector.
type BotPlayer struct {
	logger *slog.Logger
	mark   entity.Mark
	engine bestMover
	view   thinkingView
}

func NewBotPlayer(logger *slog.Logger, mark entity.Mark, engine bestMover, view thinkingView) *BotPlayer {
	return &BotPlayer{
		logger: logger.With("component", "bot", "mark", mark.Upper()),
		mark:   mark,
		engine: engine,
		view:   view,
	}
}

func (that *BotPlayer) Mark() entity.Mark {
	return that.mark
}

func (that *BotPlayer) Entity() *entity.Player {
	return entity.NewBotPlayer(that.mark)
}

func (that *BotPlayer) NextMove(ctx context.Context, game *entity.Game) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	that.view.Thinking()

	cell, err := that.engine.BestMove(game.Board, that.mark)
	if err != nil {
		return -1, fmt.Errorf("bot failed to choose a move: %w", err)
	}

	that.view.MoveChosen(that.mark, cell)
	that.logger.Debug("bot move", "gameID", game.ID, "cell", cell)

	return cell, nil
}
