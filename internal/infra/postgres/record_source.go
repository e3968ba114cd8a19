package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"quiz-insights/internal/domain"
)

// RecordSource reads previously ingested submissions from Postgres. Attempts
// are stored one row per quiz with the full attempt JSONB in the data column.
type RecordSource struct {
	pool *pgxpool.Pool
}

func NewRecordSource(pool *pgxpool.Pool) *RecordSource {
	return &RecordSource{pool: pool}
}

// LatestAttempt returns the user's most recent submission.
func (s *RecordSource) LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM quiz_attempts WHERE user_id=$1 ORDER BY submitted_at DESC LIMIT 1`,
		userID,
	).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuizAttempt{}, domain.ErrAttemptNotFound
	}
	if err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("load attempt: %w", err)
	}

	var attempt domain.QuizAttempt
	if err := json.Unmarshal(raw, &attempt); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return attempt, nil
}

// History returns every submission for the user, oldest first, flattened to
// one row per answered question.
func (s *RecordSource) History(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM quiz_attempts WHERE user_id=$1 ORDER BY submitted_at ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var attempts []domain.QuizAttempt
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		var attempt domain.QuizAttempt
		if err := json.Unmarshal(raw, &attempt); err != nil {
			return nil, fmt.Errorf("unmarshal history row: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return domain.FlattenHistory(attempts), nil
}
