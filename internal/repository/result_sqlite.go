package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqliteResult struct {
	db *sql.DB
}

func NewSQLiteResultRepository(db *sql.DB) ResultRepository {
	return &sqliteResult{
		db: db,
	}
}

// InitSQLiteResults creates the results table.
func InitSQLiteResults(ctx context.Context, db *sql.DB) error {
	query := `CREATE TABLE IF NOT EXISTS results (
		id     TEXT PRIMARY KEY,
		winner TEXT NOT NULL,
		board  TEXT NOT NULL,
		data   TEXT NOT NULL
	)`

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("can't create table: %w", err)
	}

	return nil
}

func (that *sqliteResult) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	query := `INSERT OR REPLACE INTO results (id, winner, board, data) VALUES (?, ?, ?, ?)`
	if _, err = that.db.ExecContext(ctx, query, game.ID, game.Winner, game.Board.String(), string(gameJSON)); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *sqliteResult) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	var data string

	err := that.db.QueryRowContext(ctx, `SELECT data FROM results WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *sqliteResult) Stats(ctx context.Context) (entity.Stats, error) {
	var stats entity.Stats

	rows, err := that.db.QueryContext(ctx, `SELECT winner, COUNT(*) FROM results GROUP BY winner`)
	if err != nil {
		return stats, fmt.Errorf("failed to get results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			winner string
			count  int
		)
		if err = rows.Scan(&winner, &count); err != nil {
			return stats, fmt.Errorf("failed to scan result: %w", err)
		}
		stats.Add(winner, count)
	}

	if err = rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to read results: %w", err)
	}

	return stats, nil
}
