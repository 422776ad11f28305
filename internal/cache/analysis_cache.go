package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"dermalens/internal/model"
)

// memoTTL keeps memoized analyses around for an hour, matching the
// prediction cache lifetime of the original demo.
const memoTTL = time.Hour

// AnalysisCache memoizes completed analyses keyed by an attribute
// fingerprint. The predictor is deterministic, so this is purely a
// shortcut; a hit and a recomputation are indistinguishable.
type AnalysisCache interface {
	Set(ctx context.Context, fingerprint string, rec *model.AnalysisRecord) error
	Get(ctx context.Context, fingerprint string) (*model.AnalysisRecord, error)
}

type analysisCache struct {
	client *redis.Client
}

// NewAnalysisCache creates a Redis-backed analysis memo cache.
func NewAnalysisCache(client *redis.Client) AnalysisCache {
	return &analysisCache{client: client}
}

func (c *analysisCache) Set(ctx context.Context, fingerprint string, rec *model.AnalysisRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "analysis:memo:"+fingerprint, data, memoTTL).Err()
}

func (c *analysisCache) Get(ctx context.Context, fingerprint string) (*model.AnalysisRecord, error) {
	data, err := c.client.Get(ctx, "analysis:memo:"+fingerprint).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var rec model.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
