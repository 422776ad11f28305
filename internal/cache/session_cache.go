package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"dermalens/internal/model"
)

// ErrNotFound is returned when a key is absent from the cache.
var ErrNotFound = errors.New("cache: not found")

// sessionTTL bounds how long an idle session survives. Every write
// refreshes it.
const sessionTTL = 30 * time.Minute

// SessionCache stores per-session state in Redis.
type SessionCache interface {
	Set(ctx context.Context, state *model.SessionState) error
	Get(ctx context.Context, id string) (*model.SessionState, error)
	Delete(ctx context.Context, id string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a Redis-backed session cache.
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func (c *sessionCache) Set(ctx context.Context, state *model.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "session:"+state.ID, data, sessionTTL).Err()
}

func (c *sessionCache) Get(ctx context.Context, id string) (*model.SessionState, error) {
	data, err := c.client.Get(ctx, "session:"+id).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var state model.SessionState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *sessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "session:"+id).Err()
}
