package app_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"hotel_adlab/internal/domain"
)

// ---- fakes ----

type fakeAI struct {
	calls int32
	text  string // returned as the only part, unless env or err is set
	env   *domain.Envelope
	err   error

	block   chan struct{} // when set, calls wait on it (or ctx)
	started chan struct{}
}

func (f *fakeAI) GenerateContent(ctx context.Context, prompt string) (domain.Envelope, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return domain.Envelope{}, ctx.Err()
		}
	}
	if f.err != nil {
		return domain.Envelope{}, f.err
	}
	if f.env != nil {
		return *f.env, nil
	}
	return textEnvelope(f.text), nil
}

func (f *fakeAI) Calls() int { return int(atomic.LoadInt32(&f.calls)) }

func textEnvelope(text string) domain.Envelope {
	return domain.Envelope{Candidates: []domain.Candidate{{
		Content: domain.Content{Role: "model", Parts: []domain.Part{{Text: text}}},
	}}}
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(v, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

func (c *fakeCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store)
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []domain.RecommendationLogEntry
}

func (a *fakeAudit) LogRecommendation(ctx context.Context, e domain.RecommendationLogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func (a *fakeAudit) Entries() []domain.RecommendationLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.RecommendationLogEntry(nil), a.entries...)
}

func ids(hs []domain.HotelRecord) []int64 {
	out := make([]int64, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.ID)
	}
	return out
}
