package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/laststep/internal/apperror"
	"github.com/rocketscienceinc/laststep/internal/entity"
)

const leaderboardKey = "leaderboard"

// ResultRepository keeps finished rounds ranked by final score.
type ResultRepository interface {
	Save(ctx context.Context, result *entity.RoundResult) error
	GetByID(ctx context.Context, id string) (*entity.RoundResult, error)
	Top(ctx context.Context, limit int) ([]*entity.RoundResult, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

func resultKey(id string) string {
	return "round:" + id
}

// Save - stores the round and ranks it on the leaderboard in one transaction.
func (that *dbResult) Save(ctx context.Context, result *entity.RoundResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("could not marshal round result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(result.ID), resultJSON, 0)
		pipe.ZAdd(ctx, leaderboardKey, redis.Z{
			Score:  float64(result.FinalScore),
			Member: result.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save round result: %w", err)
	}

	return nil
}

func (that *dbResult) GetByID(ctx context.Context, id string) (*entity.RoundResult, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, apperror.ErrResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get round result by id: %w", err)
	}

	var result entity.RoundResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal round result: %w", err)
	}

	return &result, nil
}

// Top - returns up to limit results, highest final score first.
func (that *dbResult) Top(ctx context.Context, limit int) ([]*entity.RoundResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	ids, err := that.client.ZRevRange(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	results := make([]*entity.RoundResult, 0, len(ids))
	for _, id := range ids {
		result, err := that.GetByID(ctx, id)
		if errors.Is(err, apperror.ErrResultNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
