package analysis

import "quiz-insights/internal/domain"

// DefaultThreshold is the accuracy percentage below which a topic or
// difficulty group is flagged for review.
const DefaultThreshold = 60.0

// Advisory texts attached to a classified trend.
const (
	ActionMaintainPace    = "Maintain your current pace and attempt harder questions."
	ActionRevisitMistakes = "Revisit your past mistakes and practice consistently."
)

// Recommend applies the threshold and trend-direction rules to the aggregated
// stats. Groups are flagged only when accuracy is strictly below the
// threshold; a group sitting exactly on the threshold passes. Flagged keys
// keep the aggregator's order. An empty trend yields a nil Trend and no
// Action.
func Recommend(topics, difficulties []domain.GroupStat, trend []domain.TrendPoint, threshold float64) domain.Recommendation {
	rec := domain.Recommendation{
		TopicsToReview:      weakKeys(topics, threshold),
		DifficultiesToFocus: weakKeys(difficulties, threshold),
	}
	if len(trend) == 0 {
		return rec
	}

	summary := &domain.TrendSummary{
		FirstScore: trend[0].Score,
		LastScore:  trend[len(trend)-1].Score,
	}
	// Exact equality is stagnant, no tolerance band.
	switch {
	case summary.LastScore > summary.FirstScore:
		summary.Direction = domain.TrendImproving
	case summary.LastScore < summary.FirstScore:
		summary.Direction = domain.TrendDeclining
	default:
		summary.Direction = domain.TrendStagnant
	}
	rec.Trend = summary

	if summary.Direction == domain.TrendImproving {
		rec.Action = ActionMaintainPace
	} else {
		rec.Action = ActionRevisitMistakes
	}
	return rec
}

func weakKeys(stats []domain.GroupStat, threshold float64) []string {
	var keys []string
	for _, s := range stats {
		if s.Accuracy < threshold {
			keys = append(keys, s.Key)
		}
	}
	return keys
}
