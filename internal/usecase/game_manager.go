package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrSameMark = errors.New("both players have the same mark")

type resultRepo interface {
	Save(ctx context.Context, game *entity.Game) error
}

type gameView interface {
	ShowBoard(board entity.Board)
	IllegalMove(err error)
	Result(game *entity.Game)
}

// Player supplies moves for one mark.
type Player interface {
	Mark() entity.Mark
	Entity() *entity.Player
	NextMove(ctx context.Context, game *entity.Game) (int, error)
}

// GameManager runs the turn loop: it alternates players until the board is finished
// and records the outcome.
type GameManager struct {
	logger     *slog.Logger
	resultRepo resultRepo
	view       gameView
}

// NewGameManager accepts a nil resultRepo when results are not stored.
func NewGameManager(logger *slog.Logger, resultRepo resultRepo, view gameView) *GameManager {
	return &GameManager{
		logger:     logger.With("component", "game_manager"),
		resultRepo: resultRepo,
		view:       view,
	}
}

func (that *GameManager) Play(ctx context.Context, first, second Player) (*entity.Game, error) {
	if first.Mark() == second.Mark() {
		return nil, fmt.Errorf("%w: %s", ErrSameMark, first.Mark().Upper())
	}

	players := map[entity.Mark]Player{
		first.Mark():  first,
		second.Mark(): second,
	}

	game := entity.NewGame(players[entity.X].Entity(), players[entity.O].Entity())

	log := that.logger.With("method", "Play", "gameID", game.ID)
	log.Info("game started")

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return game, fmt.Errorf("game interrupted: %w", err)
		}

		player := players[game.Turn]

		that.view.ShowBoard(game.Board)

		cell, err := player.NextMove(ctx, game)
		if isIllegalMove(err) {
			log.Debug("illegal move", "player", player.Mark().Upper(), "error", err)
			that.view.IllegalMove(err)

			continue
		}

		if err != nil {
			return game, fmt.Errorf("failed get next move: %w", err)
		}

		if err = game.MakeTurn(player.Mark(), cell); err != nil {
			return game, fmt.Errorf("failed make turn: %w", err)
		}
	}

	that.view.ShowBoard(game.Board)
	that.view.Result(game)

	log.Info("game finished", "winner", game.Winner, "board", game.Board.String(), "moves", game.Moves)

	that.saveResult(ctx, game)

	return game, nil
}

func (that *GameManager) saveResult(ctx context.Context, game *entity.Game) {
	if that.resultRepo == nil {
		return
	}

	log := that.logger.With("method", "saveResult", "gameID", game.ID)

	if err := that.resultRepo.Save(ctx, game); err != nil {
		log.Error("failed to save game result", "error", err)
	}
}

func isIllegalMove(err error) bool {
	return errors.Is(err, apperror.ErrInvalidPosition) || errors.Is(err, apperror.ErrCellOccupied)
}
