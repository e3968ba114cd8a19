package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"quiz-insights/internal/domain"
)

// Loader fetches submission records from the remote JSON endpoints and
// flattens them into the shapes the analysis core consumes.
type Loader struct {
	client     *http.Client
	attemptURL string
	historyURL string
}

func NewLoader(attemptURL, historyURL string, timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Loader{
		client:     &http.Client{Timeout: timeout},
		attemptURL: attemptURL,
		historyURL: historyURL,
	}
}

// attemptPayload is the wire shape of the current-attempt endpoint.
type attemptPayload struct {
	UserID      string          `json:"user_id"`
	QuizID      string          `json:"quiz_id"`
	SubmittedAt time.Time       `json:"submitted_at"`
	Details     []detailPayload `json:"details"`
}

// historyEntry is one historical submission. ResponseMap is present upstream
// but never consulted: the selected options come from Details.
type historyEntry struct {
	UserID      string            `json:"user_id"`
	QuizID      string            `json:"quiz_id"`
	Score       float64           `json:"score"`
	SubmittedAt time.Time         `json:"submitted_at"`
	ResponseMap map[string]string `json:"response_map,omitempty"`
	Details     []detailPayload   `json:"details"`
}

type detailPayload struct {
	QuestionID     string `json:"question_id"`
	Topic          string `json:"topic"`
	Difficulty     string `json:"difficulty"`
	CorrectOption  string `json:"correct_option"`
	SelectedOption string `json:"selected_option"`
}

// LatestAttempt fetches the user's current quiz submission.
func (l *Loader) LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error) {
	body, err := l.get(ctx, l.attemptURL, userID)
	if err != nil {
		return domain.QuizAttempt{}, err
	}

	var payload attemptPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.QuizAttempt{}, fmt.Errorf("decode attempt: %w", err)
	}
	if payload.UserID == "" || payload.QuizID == "" || payload.SubmittedAt.IsZero() {
		return domain.QuizAttempt{}, fmt.Errorf("attempt for user %q: %w", userID, domain.ErrIncompleteAttempt)
	}

	return domain.QuizAttempt{
		UserID:      payload.UserID,
		QuizID:      payload.QuizID,
		SubmittedAt: payload.SubmittedAt,
		Questions:   toQuestions(payload.Details),
	}, nil
}

// History fetches all past submissions for the user and flattens them into
// one row per answered question.
func (l *Loader) History(ctx context.Context, userID string) ([]domain.HistoryRecord, error) {
	body, err := l.get(ctx, l.historyURL, userID)
	if err != nil {
		return nil, err
	}

	var entries []historyEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}

	attempts := make([]domain.QuizAttempt, 0, len(entries))
	for _, e := range entries {
		attempts = append(attempts, domain.QuizAttempt{
			UserID:      e.UserID,
			QuizID:      e.QuizID,
			Score:       e.Score,
			SubmittedAt: e.SubmittedAt,
			Questions:   toQuestions(e.Details),
		})
	}
	return domain.FlattenHistory(attempts), nil
}

func (l *Loader) get(ctx context.Context, endpoint, userID string) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	q := u.Query()
	q.Set("user_id", userID)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrAttemptNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", u.Path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func toQuestions(details []detailPayload) []domain.AnsweredQuestion {
	questions := make([]domain.AnsweredQuestion, 0, len(details))
	for _, d := range details {
		questions = append(questions, domain.AnsweredQuestion{
			QuestionID:     d.QuestionID,
			Topic:          d.Topic,
			Difficulty:     d.Difficulty,
			CorrectOption:  d.CorrectOption,
			SelectedOption: d.SelectedOption,
		})
	}
	return questions
}
