package analysis

import (
	"sort"

	"quiz-insights/internal/domain"
)

// ByTopic groups scored questions by topic and computes per-group accuracy.
func ByTopic(rows []domain.AnsweredQuestion) []domain.GroupStat {
	return groupBy(rows, func(q domain.AnsweredQuestion) string { return q.Topic })
}

// ByDifficulty groups scored questions by difficulty and computes per-group accuracy.
func ByDifficulty(rows []domain.AnsweredQuestion) []domain.GroupStat {
	return groupBy(rows, func(q domain.AnsweredQuestion) string { return q.Difficulty })
}

// groupBy builds one accumulator per key and derives accuracy afterwards.
// Groups only exist for keys seen in the input, so every group has at least
// one row and the division is safe. Output is sorted lexically by key so
// reports are reproducible.
func groupBy(rows []domain.AnsweredQuestion, key func(domain.AnsweredQuestion) string) []domain.GroupStat {
	type acc struct {
		total   int
		correct int
	}
	groups := make(map[string]*acc)
	for _, row := range rows {
		k := key(row)
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
		}
		a.total++
		if row.IsCorrect {
			a.correct++
		}
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := make([]domain.GroupStat, 0, len(keys))
	for _, k := range keys {
		a := groups[k]
		stats = append(stats, domain.GroupStat{
			Key:            k,
			TotalQuestions: a.total,
			CorrectAnswers: a.correct,
			Accuracy:       float64(a.correct) / float64(a.total) * 100,
		})
	}
	return stats
}
