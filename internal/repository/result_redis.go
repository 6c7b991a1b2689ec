package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// resultsKey is a hash of winner ("X", "O", "-") to number of games.
const resultsKey = "results"

type redisResult struct {
	client *redis.Client
}

func NewRedisResultRepository(client *redis.Client) ResultRepository {
	return &redisResult{
		client: client,
	}
}

func (that *redisResult) Save(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, "game:"+game.ID, gameJSON, 0)
		if game.IsFinished() {
			pipe.HIncrBy(ctx, resultsKey, game.Winner, 1)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return nil
}

func (that *redisResult) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, "game:"+id).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	var game entity.Game
	if err = json.Unmarshal([]byte(response), &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

func (that *redisResult) Stats(ctx context.Context) (entity.Stats, error) {
	var stats entity.Stats

	counters, err := that.client.HGetAll(ctx, resultsKey).Result()
	if err != nil {
		return stats, fmt.Errorf("failed to get results: %w", err)
	}

	for winner, value := range counters {
		count, err := strconv.Atoi(value)
		if err != nil {
			return stats, fmt.Errorf("bad counter for %q: %w", winner, err)
		}
		stats.Add(winner, count)
	}

	return stats, nil
}
