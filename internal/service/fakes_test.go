package service

import (
	"context"
	"encoding/json"
	"sync"

	"dermalens/internal/cache"
	"dermalens/internal/model"
)

// In-memory stand-ins for the Redis and Mongo backed dependencies. They
// round-trip values through JSON so tests observe the same aliasing
// behavior as the real implementations.

type memSessionCache struct {
	mu     sync.Mutex
	states map[string][]byte
}

func newMemSessionCache() *memSessionCache {
	return &memSessionCache{states: make(map[string][]byte)}
}

func (c *memSessionCache) Set(ctx context.Context, state *model.SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.states[state.ID] = data
	return nil
}

func (c *memSessionCache) Get(ctx context.Context, id string) (*model.SessionState, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.states[id]
	if !ok {
		return nil, cache.ErrNotFound
	}
	var state model.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (c *memSessionCache) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.states, id)
	return nil
}

type memAnalysisCache struct {
	mu   sync.Mutex
	recs map[string][]byte
	hits int
}

func newMemAnalysisCache() *memAnalysisCache {
	return &memAnalysisCache{recs: make(map[string][]byte)}
}

func (c *memAnalysisCache) Set(ctx context.Context, fingerprint string, rec *model.AnalysisRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recs[fingerprint] = data
	return nil
}

func (c *memAnalysisCache) Get(ctx context.Context, fingerprint string) (*model.AnalysisRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.recs[fingerprint]
	if !ok {
		return nil, cache.ErrNotFound
	}
	c.hits++
	var rec model.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

type memAnalysisRepo struct {
	mu   sync.Mutex
	recs []model.AnalysisRecord
}

func newMemAnalysisRepo() *memAnalysisRepo {
	return &memAnalysisRepo{}
}

func (r *memAnalysisRepo) Save(ctx context.Context, rec *model.AnalysisRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.recs {
		if r.recs[i].ID == rec.ID {
			r.recs[i] = *rec
			return nil
		}
	}
	r.recs = append(r.recs, *rec)
	return nil
}

func (r *memAnalysisRepo) GetByID(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.recs {
		if r.recs[i].ID == id {
			rec := r.recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *memAnalysisRepo) LatestBySession(ctx context.Context, sessionID string) (*model.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *model.AnalysisRecord
	for i := range r.recs {
		if r.recs[i].SessionID != sessionID {
			continue
		}
		if latest == nil || r.recs[i].CreatedAt.After(latest.CreatedAt) {
			rec := r.recs[i]
			latest = &rec
		}
	}
	return latest, nil
}

func (r *memAnalysisRepo) ListBySession(ctx context.Context, sessionID string, limit int64) ([]model.AnalysisRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.AnalysisRecord
	for i := len(r.recs) - 1; i >= 0; i-- {
		if r.recs[i].SessionID == sessionID {
			out = append(out, r.recs[i])
		}
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type broadcastEvent struct {
	SessionID string
	Type      string
	Payload   interface{}
}

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (b *recordingBroadcaster) BroadcastToSession(sessionID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, broadcastEvent{SessionID: sessionID, Type: msgType, Payload: payload})
}

func (b *recordingBroadcaster) byType(msgType string) []broadcastEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []broadcastEvent
	for _, e := range b.events {
		if e.Type == msgType {
			out = append(out, e)
		}
	}
	return out
}
