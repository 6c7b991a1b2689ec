package repository

import (
	"context"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var ErrResultNotFound = errors.New("result not found")

// ResultRepository keeps the history of finished games.
type ResultRepository interface {
	Save(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Stats(ctx context.Context) (entity.Stats, error)
}
