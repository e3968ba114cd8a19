package domain

import "time"

// AnsweredQuestion is one answered question within a quiz attempt.
// An empty SelectedOption means the question was left unanswered.
type AnsweredQuestion struct {
	QuestionID     string `json:"question_id"`
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	CorrectOption  string `json:"correct_option"`
	SelectedOption string `json:"selected_option,omitempty"`
	IsCorrect      bool   `json:"is_correct"`
}

// QuizAttempt is a single quiz submission by one user. Score is only
// populated for historical attempts; the current attempt has no prior score.
type QuizAttempt struct {
	UserID      string             `json:"user_id"`
	QuizID      string             `json:"quiz_id"`
	SubmittedAt time.Time          `json:"submitted_at"`
	Score       float64            `json:"score,omitempty"`
	Questions   []AnsweredQuestion `json:"questions"`
}

// HistoryRecord is one flattened row of historical data: quiz-level fields
// joined onto a single answered question.
type HistoryRecord struct {
	UserID         string    `json:"user_id"`
	QuizID         string    `json:"quiz_id"`
	Score          float64   `json:"score"`
	SubmittedAt    time.Time `json:"submitted_at"`
	QuestionID     string    `json:"question_id"`
	Topic          string    `json:"topic"`
	Difficulty     string    `json:"difficulty"`
	CorrectOption  string    `json:"correct_option"`
	SelectedOption string    `json:"selected_option,omitempty"`
}

// GroupStat holds accuracy figures for one topic or difficulty group.
type GroupStat struct {
	Key            string  `json:"key"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers int     `json:"correct_answers"`
	Accuracy       float64 `json:"accuracy"`
}

// TrendPoint is one historical quiz score, one per unique quiz ID.
type TrendPoint struct {
	SubmittedAt time.Time `json:"submitted_at"`
	Score       float64   `json:"score"`
}

// TrendDirection classifies score movement between the earliest and latest
// historical attempt.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStagnant  TrendDirection = "stagnant"
)

// TrendSummary compares the first and last score of a trend series.
type TrendSummary struct {
	FirstScore float64        `json:"first_score"`
	LastScore  float64        `json:"last_score"`
	Direction  TrendDirection `json:"trend"`
}

// Messages substituted for empty recommendation branches. These are valid
// states, not errors, and are always shown to the user as informative text.
const (
	MsgNoWeakTopics      = "No weak topics. Keep up the good work!"
	MsgAllDifficultiesOK = "You are performing well across all difficulty levels."
	MsgNoHistoricalData  = "No historical data available"
)

// Recommendation is the structured output of the rule engine. A nil Trend
// means no historical data was found; Action is empty in that case.
type Recommendation struct {
	TopicsToReview      []string
	DifficultiesToFocus []string
	Trend               *TrendSummary
	Action              string
}

// Payload renders the recommendation as the nested string-keyed mapping shown
// to users, substituting the fixed messages for empty branches. The action key
// is only present when a trend could be classified.
func (r Recommendation) Payload() map[string]any {
	payload := make(map[string]any, 4)

	if len(r.TopicsToReview) > 0 {
		payload["topics_to_review"] = r.TopicsToReview
	} else {
		payload["topics_to_review"] = MsgNoWeakTopics
	}
	if len(r.DifficultiesToFocus) > 0 {
		payload["difficulties_to_focus"] = r.DifficultiesToFocus
	} else {
		payload["difficulties_to_focus"] = MsgAllDifficultiesOK
	}
	if r.Trend != nil {
		payload["historical_trend"] = map[string]any{
			"first_score": r.Trend.FirstScore,
			"last_score":  r.Trend.LastScore,
			"trend":       string(r.Trend.Direction),
		}
		payload["action"] = r.Action
	} else {
		payload["historical_trend"] = MsgNoHistoricalData
	}
	return payload
}

// FlattenHistory expands historical quiz attempts into one row per answered
// question, carrying the quiz-level score and timestamp onto each row.
func FlattenHistory(attempts []QuizAttempt) []HistoryRecord {
	var rows []HistoryRecord
	for _, attempt := range attempts {
		for _, q := range attempt.Questions {
			rows = append(rows, HistoryRecord{
				UserID:         attempt.UserID,
				QuizID:         attempt.QuizID,
				Score:          attempt.Score,
				SubmittedAt:    attempt.SubmittedAt,
				QuestionID:     q.QuestionID,
				Topic:          q.Topic,
				Difficulty:     q.Difficulty,
				CorrectOption:  q.CorrectOption,
				SelectedOption: q.SelectedOption,
			})
		}
	}
	return rows
}
