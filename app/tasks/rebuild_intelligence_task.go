package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/export"
	"github.com/pecollective/market-pulse/app/intel"
)

// RebuildIntelligenceTask recomputes the market summary from the full
// master table and rewrites every published artifact. The whole summary
// is rebuilt from scratch each run; there is no incremental path.
type RebuildIntelligenceTask struct {
	Task
	aggregator   *intel.Aggregator
	exporter     *export.Exporter
	jobRepo      database.JobRepository
	snapshotRepo database.SnapshotRepository
}

func NewRebuildIntelligenceTask(aggregator *intel.Aggregator, exporter *export.Exporter,
	jobRepo database.JobRepository, snapshotRepo database.SnapshotRepository) *RebuildIntelligenceTask {
	return &RebuildIntelligenceTask{
		Task:         NewTask(TaskTypeRebuildIntelligence),
		aggregator:   aggregator,
		exporter:     exporter,
		jobRepo:      jobRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (t *RebuildIntelligenceTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	collection, err := t.jobRepo.GetAllJobs()
	if err != nil {
		return fmt.Errorf("failed to load enriched jobs: %w", err)
	}

	summary := t.aggregator.Run(collection)

	if err := t.snapshotRepo.SaveSnapshot(summary); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	written, err := t.exporter.WriteAll(collection, summary)
	if err != nil {
		return fmt.Errorf("failed to write artifacts: %w", err)
	}

	slog.Info("Task completed",
		"type", "RebuildIntelligence",
		"duration", t.GetDuration(),
		"total_jobs", summary.TotalJobs,
		"with_salary", summary.SalaryStats["count_with_salary"],
		"tech_pct", summary.TechPercentage,
		"artifacts", len(written))

	return nil
}
