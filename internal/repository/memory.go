package repository

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/rocketscienceinc/laststep/internal/apperror"
	"github.com/rocketscienceinc/laststep/internal/entity"
)

// memoryResult is the leaderboard used when redis is disabled. It is lost on exit.
type memoryResult struct {
	mu      sync.RWMutex
	results map[string]*entity.RoundResult
}

func NewMemoryResultRepository() ResultRepository {
	return &memoryResult{results: make(map[string]*entity.RoundResult)}
}

func (that *memoryResult) Save(_ context.Context, result *entity.RoundResult) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *result
	that.results[result.ID] = &stored

	return nil
}

func (that *memoryResult) GetByID(_ context.Context, id string) (*entity.RoundResult, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	result, ok := that.results[id]
	if !ok {
		return nil, apperror.ErrResultNotFound
	}

	found := *result
	return &found, nil
}

// Top orders like a redis ZREVRANGE: score descending, ties by id descending.
func (that *memoryResult) Top(_ context.Context, limit int) ([]*entity.RoundResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	results := make([]*entity.RoundResult, 0, len(that.results))
	for _, result := range that.results {
		found := *result
		results = append(results, &found)
	}

	slices.SortFunc(results, func(a, b *entity.RoundResult) int {
		if c := cmp.Compare(b.FinalScore, a.FinalScore); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
