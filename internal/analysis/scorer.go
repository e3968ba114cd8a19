package analysis

import (
	"fmt"

	"quiz-insights/internal/domain"
)

// Score marks each answered question correct or incorrect and returns a fresh
// slice; the input is never mutated. An unanswered question (empty
// SelectedOption) is simply incorrect. A question missing its topic,
// difficulty, or correct option is a data-integrity failure and aborts the
// whole scoring pass.
func Score(questions []domain.AnsweredQuestion) ([]domain.AnsweredQuestion, error) {
	scored := make([]domain.AnsweredQuestion, len(questions))
	for i, q := range questions {
		switch {
		case q.Topic == "":
			return nil, fmt.Errorf("question %q: %w", q.QuestionID, domain.ErrMissingTopic)
		case q.Difficulty == "":
			return nil, fmt.Errorf("question %q: %w", q.QuestionID, domain.ErrMissingDifficulty)
		case q.CorrectOption == "":
			return nil, fmt.Errorf("question %q: %w", q.QuestionID, domain.ErrMissingCorrectOption)
		}
		q.IsCorrect = q.SelectedOption == q.CorrectOption
		scored[i] = q
	}
	return scored, nil
}
