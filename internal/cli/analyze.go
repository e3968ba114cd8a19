package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"quiz-insights/internal/analysis"
	"quiz-insights/internal/config"
	httploader "quiz-insights/internal/infra/httpapi"
	"quiz-insights/internal/infra/memory"
	pgsource "quiz-insights/internal/infra/postgres"
	rediscache "quiz-insights/internal/infra/redis"
	"quiz-insights/internal/report"
)

// NewAnalyzeCmd builds the CLI subcommand that runs a full analysis for one user.
func NewAnalyzeCmd(configPath *string) *cobra.Command {
	var (
		threshold  float64
		chartPath  string
		asJSON     bool
		sourceName string
	)

	cmd := &cobra.Command{
		Use:   "analyze <user-id>",
		Short: "Analyze the latest quiz attempt and score history for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), *configPath, args[0], threshold, chartPath, asJSON, sourceName)
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "accuracy threshold for weak groups (0 = config or default)")
	cmd.Flags().StringVar(&chartPath, "chart", "", "write the trend line chart to this HTML file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the full report as JSON instead of tables")
	cmd.Flags().StringVar(&sourceName, "source", "http", "record source to use: http or postgres")
	return cmd
}

func runAnalyze(ctx context.Context, configPath, userID string, threshold float64, chartPath string, asJSON bool, sourceName string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	source, cleanup, err := buildSource(ctx, cfg, sourceName)
	if err != nil {
		return err
	}
	defer cleanup()

	if threshold == 0 {
		threshold = cfg.Analysis.Threshold
	}
	analyzer := analysis.NewAnalyzer(source, threshold)

	result, err := analyzer.Analyze(ctx, userID)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			TopicStats      any `json:"topic_stats"`
			DifficultyStats any `json:"difficulty_stats"`
			Trend           any `json:"trend"`
			Recommendation  any `json:"recommendation"`
		}{result.TopicStats, result.DifficultyStats, result.Trend, result.Recommendation.Payload()}); err != nil {
			return err
		}
	} else {
		if err := report.NewReporter(os.Stdout).Print(result); err != nil {
			return err
		}
	}

	if chartPath == "" {
		chartPath = cfg.Report.ChartPath
	}
	if chartPath != "" && len(result.Trend) > 0 {
		if err := report.WriteTrendChart(result.Trend, chartPath); err != nil {
			return err
		}
		log.Printf("trend chart written to %s", chartPath)
	}
	return nil
}

// buildSource wires the record source chain: HTTP or Postgres at the bottom,
// Redis cache on top when configured, in-process cache otherwise.
func buildSource(ctx context.Context, cfg config.Config, sourceName string) (analysis.RecordSource, func(), error) {
	cleanup := func() {}

	var base analysis.RecordSource
	switch sourceName {
	case "http", "":
		if cfg.Endpoints.AttemptURL == "" || cfg.Endpoints.HistoryURL == "" {
			return nil, cleanup, fmt.Errorf("endpoint urls not configured")
		}
		timeout := config.Duration(cfg.Endpoints.Timeout, 10*time.Second)
		base = httploader.NewLoader(cfg.Endpoints.AttemptURL, cfg.Endpoints.HistoryURL, timeout)
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, cleanup, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, cleanup, err
		}
		cleanup = pool.Close
		base = pgsource.NewRecordSource(pool)
	default:
		return nil, cleanup, fmt.Errorf("unknown source %q", sourceName)
	}

	ttl := config.Duration(cfg.Redis.TTL, 10*time.Minute)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return rediscache.NewRecordCache(client, base, ttl), cleanup, nil
	}
	return memory.NewRecordCache(base, ttl), cleanup, nil
}
