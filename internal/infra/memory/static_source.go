package memory

import (
	"context"

	"quiz-insights/internal/domain"
)

// StaticRecordSource serves attempts and history from in-memory maps (useful
// for tests/demos).
type StaticRecordSource struct {
	attempts map[string]domain.QuizAttempt
	history  map[string][]domain.HistoryRecord
}

func NewStaticRecordSource(attempts map[string]domain.QuizAttempt, history map[string][]domain.HistoryRecord) *StaticRecordSource {
	return &StaticRecordSource{attempts: attempts, history: history}
}

func (s *StaticRecordSource) LatestAttempt(_ context.Context, userID string) (domain.QuizAttempt, error) {
	if attempt, ok := s.attempts[userID]; ok {
		return attempt, nil
	}
	return domain.QuizAttempt{}, domain.ErrAttemptNotFound
}

func (s *StaticRecordSource) History(_ context.Context, userID string) ([]domain.HistoryRecord, error) {
	// No history is a valid state, not an error.
	return s.history[userID], nil
}
