package analysis_test

import (
	"testing"
	"time"

	"quiz-insights/internal/analysis"
	"quiz-insights/internal/domain"
)

func TestTrendDeduplicatesAndSorts(t *testing.T) {
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []domain.HistoryRecord{
		// quiz-2 appears first, with two question rows.
		{UserID: "u1", QuizID: "quiz-2", Score: 55, SubmittedAt: base.Add(48 * time.Hour), QuestionID: "q1"},
		{UserID: "u1", QuizID: "quiz-2", Score: 55, SubmittedAt: base.Add(48 * time.Hour), QuestionID: "q2"},
		{UserID: "u1", QuizID: "quiz-1", Score: 40, SubmittedAt: base, QuestionID: "q1"},
		// Another user's rows must be ignored.
		{UserID: "u2", QuizID: "quiz-9", Score: 90, SubmittedAt: base.Add(time.Hour), QuestionID: "q1"},
	}

	points := analysis.Trend(rows, "u1")
	if len(points) != 2 {
		t.Fatalf("expected one point per unique quiz, got %d", len(points))
	}
	if points[0].Score != 40 || points[1].Score != 55 {
		t.Fatalf("expected ascending submission order, got %+v", points)
	}
	for i := 1; i < len(points); i++ {
		if points[i].SubmittedAt.Before(points[i-1].SubmittedAt) {
			t.Fatalf("points not sorted by submission time: %+v", points)
		}
	}
}

func TestTrendEmptyHistory(t *testing.T) {
	points := analysis.Trend(nil, "u1")
	if len(points) != 0 {
		t.Fatalf("expected empty series, got %+v", points)
	}

	// Rows exist but none belong to the target user.
	rows := []domain.HistoryRecord{
		{UserID: "u2", QuizID: "quiz-1", Score: 70, SubmittedAt: time.Now(), QuestionID: "q1"},
	}
	if points := analysis.Trend(rows, "u1"); len(points) != 0 {
		t.Fatalf("expected empty series for user without history, got %+v", points)
	}
}
