package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"quiz-insights/internal/domain"
)

// RecordSource fetches submission records from a backing store (HTTP
// endpoints, Postgres).
type RecordSource interface {
	LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error)
	History(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}

// RecordCache caches fetched records in Redis and falls back to the source on
// a miss. Entries are stored as JSON under:
//
//	submission:{userID}:attempt
//	submission:{userID}:history
type RecordCache struct {
	client *redis.Client
	source RecordSource
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewRecordCache(client *redis.Client, source RecordSource, ttl time.Duration) *RecordCache {
	return &RecordCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *RecordCache) LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error) {
	key := c.attemptKey(userID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var attempt domain.QuizAttempt
		if err := json.Unmarshal(raw, &attempt); err == nil {
			return attempt, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var attempt domain.QuizAttempt
			if err := json.Unmarshal(raw, &attempt); err == nil {
				return attempt, nil
			}
		}

		attempt, err := c.source.LatestAttempt(ctx, userID)
		if err != nil {
			return domain.QuizAttempt{}, err
		}
		c.store(ctx, key, attempt)
		return attempt, nil
	})
	if err != nil {
		return domain.QuizAttempt{}, err
	}
	return result.(domain.QuizAttempt), nil
}

func (c *RecordCache) History(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	key := c.historyKey(userID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var rows []domain.HistoryRecord
		if err := json.Unmarshal(raw, &rows); err == nil {
			return rows, nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			var rows []domain.HistoryRecord
			if err := json.Unmarshal(raw, &rows); err == nil {
				return rows, nil
			}
		}

		rows, err := c.source.History(ctx, userID)
		if err != nil {
			return nil, err
		}
		c.store(ctx, key, rows)
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.HistoryRecord), nil
}

// store is best-effort: a failed cache write never fails the read path.
func (c *RecordCache) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err()
}

func (c *RecordCache) attemptKey(userID string) string {
	return fmt.Sprintf("submission:%s:attempt", userID)
}

func (c *RecordCache) historyKey(userID string) string {
	return fmt.Sprintf("submission:%s:history", userID)
}

func (c *RecordCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
