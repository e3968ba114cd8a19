package analysis

import (
	"sort"

	"quiz-insights/internal/domain"
)

// Trend reduces flattened historical rows to one chronological score series
// for the given user. A quiz is one point regardless of how many question
// rows it contributed; the quiz-level score and timestamp come from the first
// row seen for each quiz ID. Users with no history get an empty series.
func Trend(rows []domain.HistoryRecord, userID string) []domain.TrendPoint {
	seen := make(map[string]struct{})
	var points []domain.TrendPoint
	for _, row := range rows {
		if row.UserID != userID {
			continue
		}
		if _, ok := seen[row.QuizID]; ok {
			continue
		}
		seen[row.QuizID] = struct{}{}
		points = append(points, domain.TrendPoint{
			SubmittedAt: row.SubmittedAt,
			Score:       row.Score,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].SubmittedAt.Before(points[j].SubmittedAt)
	})
	return points
}
