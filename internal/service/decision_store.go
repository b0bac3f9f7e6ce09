package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thurahtetaung/universal-yoga/internal/model"
	"github.com/thurahtetaung/universal-yoga/pkg/redis"
)

// PendingEdit is a day change waiting for the user to choose what happens to
// the course's existing classes.
type PendingEdit struct {
	Token           string       `json:"token"`
	CourseID        int64        `json:"course_id"`
	Original        model.Course `json:"original"`
	Edited          model.Course `json:"edited"`
	AffectedClasses int          `json:"affected_classes"`
	CreatedAt       time.Time    `json:"created_at"`
}

// DecisionStore parks pending edits between the edit request and its
// resolution. Take removes the entry, so each token resolves once.
type DecisionStore interface {
	Save(ctx context.Context, p *PendingEdit, ttl time.Duration) error
	// Take returns ErrDecisionNotFound for unknown, used or expired tokens.
	Take(ctx context.Context, token string) (*PendingEdit, error)
}

// ── in-process store ──

type memoryEntry struct {
	edit      PendingEdit
	expiresAt time.Time // zero: never
}

type memoryDecisionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryDecisionStore keeps pending edits in process memory. They do not
// survive a restart, which amounts to cancelling them.
func NewMemoryDecisionStore() DecisionStore {
	return &memoryDecisionStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *memoryDecisionStore) Save(_ context.Context, p *PendingEdit, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep()

	entry := memoryEntry{edit: *p}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.entries[p.Token] = entry
	return nil
}

func (m *memoryDecisionStore) Take(_ context.Context, token string) (*PendingEdit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[token]
	if !ok {
		return nil, ErrDecisionNotFound
	}
	delete(m.entries, token)

	if m.expired(entry) {
		return nil, ErrDecisionNotFound
	}
	edit := entry.edit
	return &edit, nil
}

// sweep drops expired entries. Caller holds mu.
func (m *memoryDecisionStore) sweep() {
	for token, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, token)
		}
	}
}

func (m *memoryDecisionStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

// ── redis-backed store ──

type redisDecisionStore struct {
	rdb *redis.Client
}

// NewRedisDecisionStore keeps pending edits in redis, where they survive a
// process restart and expire through the key TTL.
func NewRedisDecisionStore(rdb *redis.Client) DecisionStore {
	return &redisDecisionStore{rdb: rdb}
}

func (r *redisDecisionStore) Save(ctx context.Context, p *PendingEdit, ttl time.Duration) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pending edit: %w", err)
	}
	return r.rdb.SavePending(ctx, p.Token, data, ttl)
}

func (r *redisDecisionStore) Take(ctx context.Context, token string) (*PendingEdit, error) {
	data, err := r.rdb.TakePending(ctx, token)
	if errors.Is(err, redis.ErrPendingNotFound) {
		return nil, ErrDecisionNotFound
	}
	if err != nil {
		return nil, err
	}

	var p PendingEdit
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode pending edit: %w", err)
	}
	return &p, nil
}
