package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"quiz-insights/internal/domain"
)

// RecordSource fetches submission records from a backing store (HTTP
// endpoints, Postgres).
type RecordSource interface {
	LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error)
	History(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}

// RecordCache caches fetched records with TTL to avoid repeated endpoint hits.
type RecordCache struct {
	source RecordSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu       sync.RWMutex
	attempts map[string]cachedAttempt
	history  map[string]cachedHistory
}

type cachedAttempt struct {
	attempt   domain.QuizAttempt
	expiresAt time.Time
}

type cachedHistory struct {
	rows      []domain.HistoryRecord
	expiresAt time.Time
}

func NewRecordCache(source RecordSource, ttl time.Duration) *RecordCache {
	return &RecordCache{
		source:   source,
		ttl:      ttl,
		clock:    time.Now,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		attempts: make(map[string]cachedAttempt),
		history:  make(map[string]cachedHistory),
	}
}

func (c *RecordCache) LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.attempts[userID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.attempt, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("attempt:"+userID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.attempts[userID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.attempt, nil
		}
		c.mu.RUnlock()

		attempt, err := c.source.LatestAttempt(ctx, userID)
		if err != nil {
			return domain.QuizAttempt{}, err
		}

		c.mu.Lock()
		c.attempts[userID] = cachedAttempt{
			attempt:   attempt,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return attempt, nil
	})
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	return result.(domain.QuizAttempt), nil
}

func (c *RecordCache) History(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.history[userID]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.rows, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("history:"+userID, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.history[userID]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.rows, nil
		}
		c.mu.RUnlock()

		rows, err := c.source.History(ctx, userID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.history[userID] = cachedHistory{
			rows:      rows,
			expiresAt: now.Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.HistoryRecord), nil
}

func (c *RecordCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
