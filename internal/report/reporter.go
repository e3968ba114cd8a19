package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/olekukonko/tablewriter"
	"quiz-insights/internal/analysis"
	"quiz-insights/internal/domain"
)

// Reporter renders analysis output as tables and a recommendation payload.
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Print renders the full report: topic and difficulty tables, the trend
// series, and the recommendation payload.
func (r *Reporter) Print(report analysis.Report) error {
	fmt.Fprintf(r.out, "Quiz %s, submitted %s\n\n", report.Attempt.QuizID, report.Attempt.SubmittedAt.Format("2006-01-02 15:04"))

	fmt.Fprintln(r.out, "Accuracy by topic")
	r.printStats(report.TopicStats, "Topic")

	fmt.Fprintln(r.out, "Accuracy by difficulty")
	r.printStats(report.DifficultyStats, "Difficulty")

	if len(report.Trend) > 0 {
		fmt.Fprintln(r.out, "Score history")
		r.printTrend(report.Trend)
	}

	fmt.Fprintln(r.out, "Recommendations")
	return r.printRecommendation(report.Recommendation)
}

func (r *Reporter) printStats(stats []domain.GroupStat, keyHeader string) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{keyHeader, "Questions", "Correct", "Accuracy"})
	for _, s := range stats {
		table.Append([]string{
			s.Key,
			strconv.Itoa(s.TotalQuestions),
			strconv.Itoa(s.CorrectAnswers),
			fmt.Sprintf("%.1f%%", s.Accuracy),
		})
	}
	table.Render()
	fmt.Fprintln(r.out)
}

func (r *Reporter) printTrend(points []domain.TrendPoint) {
	table := tablewriter.NewWriter(r.out)
	table.SetHeader([]string{"Submitted", "Score"})
	for _, p := range points {
		table.Append([]string{
			p.SubmittedAt.Format("2006-01-02"),
			fmt.Sprintf("%.1f", p.Score),
		})
	}
	table.Render()
	fmt.Fprintln(r.out)
}

func (r *Reporter) printRecommendation(rec domain.Recommendation) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(rec.Payload())
}

// RenderTrendChart writes the score trend as an HTML line chart.
func RenderTrendChart(points []domain.TrendPoint, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Score trend",
			Subtitle: "One point per historical quiz attempt",
		}),
	)

	xs := make([]string, 0, len(points))
	ys := make([]opts.LineData, 0, len(points))
	for _, p := range points {
		xs = append(xs, p.SubmittedAt.Format("2006-01-02"))
		ys = append(ys, opts.LineData{Value: p.Score})
	}
	line.SetXAxis(xs).AddSeries("score", ys)
	return line.Render(w)
}

// WriteTrendChart renders the chart to a file at path.
func WriteTrendChart(points []domain.TrendPoint, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	return RenderTrendChart(points, f)
}
