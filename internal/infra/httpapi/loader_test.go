package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quiz-insights/internal/domain"
)

func TestLatestAttemptFetchesAndDecodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "u1" {
			t.Errorf("expected user_id=u1, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"user_id": "u1",
			"quiz_id": "quiz-4",
			"submitted_at": "2024-03-22T10:00:00Z",
			"details": [
				{"question_id": "q1", "topic": "Anatomy", "difficulty": "easy", "correct_option": "a", "selected_option": "a"},
				{"question_id": "q2", "topic": "Anatomy", "difficulty": "hard", "correct_option": "b", "selected_option": null}
			]
		}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/attempt", server.URL+"/history", time.Second)
	attempt, err := loader.LatestAttempt(context.Background(), "u1")
	if err != nil {
		t.Fatalf("latest attempt: %v", err)
	}
	if attempt.QuizID != "quiz-4" || len(attempt.Questions) != 2 {
		t.Fatalf("unexpected attempt %+v", attempt)
	}
	if attempt.Questions[1].SelectedOption != "" {
		t.Fatalf("null selected_option should decode as unanswered, got %q", attempt.Questions[1].SelectedOption)
	}
}

func TestHistoryFlattensRowsAndIgnoresResponseMap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"user_id": "u1", "quiz_id": "quiz-1", "score": 40, "submitted_at": "2024-03-01T10:00:00Z",
				"response_map": {"q1": "zzz"},
				"details": [
					{"question_id": "q1", "topic": "Anatomy", "difficulty": "easy", "correct_option": "a", "selected_option": "b"},
					{"question_id": "q2", "topic": "Physiology", "difficulty": "hard", "correct_option": "c", "selected_option": "c"}
				]
			},
			{
				"user_id": "u1", "quiz_id": "quiz-2", "score": 55, "submitted_at": "2024-03-08T10:00:00Z",
				"details": [
					{"question_id": "q1", "topic": "Anatomy", "difficulty": "easy", "correct_option": "a", "selected_option": "a"}
				]
			}
		]`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/attempt", server.URL+"/history", time.Second)
	rows, err := loader.History(context.Background(), "u1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 flattened rows, got %d", len(rows))
	}
	// Quiz-level fields are carried onto every row.
	if rows[0].QuizID != "quiz-1" || rows[0].Score != 40 || rows[1].Score != 40 {
		t.Fatalf("quiz fields not joined onto rows: %+v", rows[:2])
	}
	// selected_option comes from details, not the response map.
	if rows[0].SelectedOption != "b" {
		t.Fatalf("expected selected option from details, got %q", rows[0].SelectedOption)
	}
}

func TestLatestAttemptNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/attempt", server.URL+"/history", time.Second)
	if _, err := loader.LatestAttempt(context.Background(), "ghost"); err != domain.ErrAttemptNotFound {
		t.Fatalf("expected not-found sentinel, got %v", err)
	}
}

func TestLatestAttemptRejectsIncompletePayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quiz_id": "quiz-1", "details": []}`))
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/attempt", server.URL+"/history", time.Second)
	_, err := loader.LatestAttempt(context.Background(), "u1")
	if !errors.Is(err, domain.ErrIncompleteAttempt) {
		t.Fatalf("expected incomplete-attempt error, got %v", err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	loader := NewLoader(server.URL+"/attempt", server.URL+"/history", time.Second)
	if _, err := loader.History(context.Background(), "u1"); err == nil {
		t.Fatalf("expected error on 502")
	}
}
