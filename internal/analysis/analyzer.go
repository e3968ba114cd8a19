package analysis

import (
	"context"

	"quiz-insights/internal/domain"
)

// RecordSource abstracts where submission records come from (HTTP endpoints,
// Postgres, a cache in front of either).
type RecordSource interface {
	LatestAttempt(ctx context.Context, userID string) (domain.QuizAttempt, error)
	History(ctx context.Context, userID string) ([]domain.HistoryRecord, error)
}

// Report bundles everything the reporter needs for one analysis run.
type Report struct {
	Attempt         domain.QuizAttempt
	TopicStats      []domain.GroupStat
	DifficultyStats []domain.GroupStat
	Trend           []domain.TrendPoint
	Recommendation  domain.Recommendation
}

// Analyzer runs the full pipeline over one user's records: score the latest
// attempt, aggregate by topic and difficulty, extract the historical trend,
// and derive recommendations.
type Analyzer struct {
	source    RecordSource
	threshold float64
}

func NewAnalyzer(source RecordSource, threshold float64) *Analyzer {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Analyzer{source: source, threshold: threshold}
}

// Analyze produces the report for one user. It fails only when a source
// errors or the attempt fails the scorer's integrity checks.
func (a *Analyzer) Analyze(ctx context.Context, userID string) (Report, error) {
	attempt, err := a.source.LatestAttempt(ctx, userID)
	if err != nil {
		return Report{}, err
	}
	scored, err := Score(attempt.Questions)
	if err != nil {
		return Report{}, err
	}
	attempt.Questions = scored

	history, err := a.source.History(ctx, userID)
	if err != nil {
		return Report{}, err
	}

	topics := ByTopic(scored)
	difficulties := ByDifficulty(scored)
	trend := Trend(history, userID)

	return Report{
		Attempt:         attempt,
		TopicStats:      topics,
		DifficultyStats: difficulties,
		Trend:           trend,
		Recommendation:  Recommend(topics, difficulties, trend, a.threshold),
	}, nil
}
