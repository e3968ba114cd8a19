package analysis_test

import (
	"testing"

	"quiz-insights/internal/analysis"
	"quiz-insights/internal/domain"
)

func TestByTopicComputesAccuracy(t *testing.T) {
	rows := scoredRows(t, []domain.AnsweredQuestion{
		{QuestionID: "q1", Topic: "Anatomy", Difficulty: "easy", CorrectOption: "a", SelectedOption: "a"},
		{QuestionID: "q2", Topic: "Anatomy", Difficulty: "hard", CorrectOption: "b", SelectedOption: "c"},
		{QuestionID: "q3", Topic: "Physiology", Difficulty: "easy", CorrectOption: "a", SelectedOption: "a"},
		{QuestionID: "q4", Topic: "Physiology", Difficulty: "hard", CorrectOption: "d", SelectedOption: "d"},
	})

	stats := analysis.ByTopic(rows)
	if len(stats) != 2 {
		t.Fatalf("expected 2 topic groups, got %d", len(stats))
	}
	// Lexical order: Anatomy before Physiology.
	if stats[0].Key != "Anatomy" || stats[0].Accuracy != 50.0 {
		t.Fatalf("expected Anatomy at 50%%, got %+v", stats[0])
	}
	if stats[1].Key != "Physiology" || stats[1].Accuracy != 100.0 {
		t.Fatalf("expected Physiology at 100%%, got %+v", stats[1])
	}
}

func TestByDifficultyComputesAccuracy(t *testing.T) {
	rows := scoredRows(t, []domain.AnsweredQuestion{
		{QuestionID: "q1", Topic: "Anatomy", Difficulty: "easy", CorrectOption: "a", SelectedOption: "a"},
		{QuestionID: "q2", Topic: "Anatomy", Difficulty: "hard", CorrectOption: "b", SelectedOption: "c"},
		{QuestionID: "q3", Topic: "Physiology", Difficulty: "hard", CorrectOption: "a", SelectedOption: "a"},
	})

	stats := analysis.ByDifficulty(rows)
	if len(stats) != 2 {
		t.Fatalf("expected 2 difficulty groups, got %d", len(stats))
	}
	if stats[0].Key != "easy" || stats[0].TotalQuestions != 1 || stats[0].CorrectAnswers != 1 {
		t.Fatalf("unexpected easy stats %+v", stats[0])
	}
	if stats[1].Key != "hard" || stats[1].TotalQuestions != 2 || stats[1].CorrectAnswers != 1 || stats[1].Accuracy != 50.0 {
		t.Fatalf("unexpected hard stats %+v", stats[1])
	}
}

func TestGroupStatsStayWithinBounds(t *testing.T) {
	rows := scoredRows(t, []domain.AnsweredQuestion{
		{QuestionID: "q1", Topic: "Anatomy", Difficulty: "easy", CorrectOption: "a", SelectedOption: "b"},
		{QuestionID: "q2", Topic: "Anatomy", Difficulty: "easy", CorrectOption: "a", SelectedOption: "b"},
	})

	for _, s := range analysis.ByTopic(rows) {
		if s.CorrectAnswers > s.TotalQuestions {
			t.Fatalf("correct %d exceeds total %d", s.CorrectAnswers, s.TotalQuestions)
		}
		if s.Accuracy < 0 || s.Accuracy > 100 {
			t.Fatalf("accuracy out of range: %f", s.Accuracy)
		}
		if s.TotalQuestions < 1 {
			t.Fatalf("empty group should not exist: %+v", s)
		}
	}
}

func scoredRows(t *testing.T, questions []domain.AnsweredQuestion) []domain.AnsweredQuestion {
	t.Helper()
	scored, err := analysis.Score(questions)
	if err != nil {
		t.Fatalf("score rows: %v", err)
	}
	return scored
}
