package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/export"
	"github.com/pecollective/market-pulse/app/ingest"
	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
)

// ProcessImportTask runs the enrichment pass for one raw scrape drop:
// read, dedup, classify, persist. On success it enqueues the intelligence
// rebuild itself, after the last upsert has landed; enqueuing the rebuild
// alongside the import would let another worker read the master table
// mid-import. The console-style breakdown report the newsletter team
// reads after each import is logged on completion.
type ProcessImportTask struct {
	Task
	RawFile      string
	reader       *ingest.Reader
	enricher     *jobs.Enricher
	aggregator   *intel.Aggregator
	exporter     *export.Exporter
	jobRepo      database.JobRepository
	snapshotRepo database.SnapshotRepository
	scheduler    TaskSchedulerInterface
}

func NewProcessImportTask(rawFile string, reader *ingest.Reader, enricher *jobs.Enricher,
	aggregator *intel.Aggregator, exporter *export.Exporter,
	jobRepo database.JobRepository, snapshotRepo database.SnapshotRepository,
	scheduler TaskSchedulerInterface) *ProcessImportTask {
	return &ProcessImportTask{
		Task:         NewTask(TaskTypeProcessImport),
		RawFile:      rawFile,
		reader:       reader,
		enricher:     enricher,
		aggregator:   aggregator,
		exporter:     exporter,
		jobRepo:      jobRepo,
		snapshotRepo: snapshotRepo,
		scheduler:    scheduler,
	}
}

func (t *ProcessImportTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	raws, err := t.reader.LoadFile(t.RawFile)
	if err != nil {
		return fmt.Errorf("failed to load raw file: %w", err)
	}

	enriched, err := t.enricher.EnrichAll(ctx, raws)
	if err != nil {
		return fmt.Errorf("failed to enrich jobs: %w", err)
	}

	for _, job := range enriched {
		if err := t.jobRepo.UpsertJob(job); err != nil {
			return fmt.Errorf("failed to store job %q: %w", job.Title, err)
		}
	}

	logBreakdowns(enriched)

	rebuild := NewRebuildIntelligenceTask(t.aggregator, t.exporter, t.jobRepo, t.snapshotRepo)
	if err := t.scheduler.EnqueueTask(rebuild); err != nil {
		return fmt.Errorf("failed to enqueue intelligence rebuild: %w", err)
	}

	slog.Info("Task completed",
		"type", "ProcessImport",
		"file", filepath.Base(t.RawFile),
		"duration", t.GetDuration(),
		"raw", len(raws),
		"enriched", len(enriched),
		"dropped_no_title", len(raws)-len(enriched))

	return nil
}

// logBreakdowns reports the per-import category/seniority/remote/quality
// splits at info level.
func logBreakdowns(enriched []jobs.EnrichedJob) {
	if len(enriched) == 0 {
		return
	}

	categories := intel.NewCounter()
	seniority := intel.NewCounter()
	remote := intel.NewCounter()
	quality := intel.NewCounter()
	techCount := 0
	salaryCount := 0

	for _, job := range enriched {
		categories.Add(job.JobCategory)
		seniority.Add(job.Seniority)
		remote.Add(job.RemoteType)
		quality.Add(job.DataQuality)
		if job.IsTech {
			techCount++
		}
		if job.SalaryMax != nil {
			salaryCount++
		}
	}

	for _, e := range categories.MostCommon(0) {
		slog.Info("Import breakdown", "dimension", "category", "value", e.Key, "count", e.Count)
	}
	for _, e := range seniority.MostCommon(0) {
		slog.Info("Import breakdown", "dimension", "seniority", "value", e.Key, "count", e.Count)
	}
	for _, e := range remote.MostCommon(0) {
		slog.Info("Import breakdown", "dimension", "remote_type", "value", e.Key, "count", e.Count)
	}
	for _, e := range quality.MostCommon(0) {
		slog.Info("Import breakdown", "dimension", "data_quality", "value", e.Key, "count", e.Count)
	}
	slog.Info("Import breakdown", "dimension", "tech_companies", "count", techCount,
		"pct", fmt.Sprintf("%.1f", float64(techCount)/float64(len(enriched))*100))
	slog.Info("Import breakdown", "dimension", "with_salary", "count", salaryCount)
}
