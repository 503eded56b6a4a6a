package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pecollective/market-pulse/app/cfg"
	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/export"
	"github.com/pecollective/market-pulse/app/ingest"
	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Scheduler owns the worker pool and the data-directory watch. Each tick
// it looks for a raw scrape drop it has not processed yet; a new drop
// enqueues the import task followed by a full intelligence rebuild.
type Scheduler struct {
	reader       *ingest.Reader
	enricher     *jobs.Enricher
	aggregator   *intel.Aggregator
	exporter     *export.Exporter
	jobRepo      database.JobRepository
	snapshotRepo database.SnapshotRepository

	dataDir     string
	interval    time.Duration
	workerCount int

	mu            sync.Mutex
	lastProcessed string

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	taskQueue chan TaskInterface
}

func NewScheduler(reader *ingest.Reader, enricher *jobs.Enricher, aggregator *intel.Aggregator,
	exporter *export.Exporter, jobRepo database.JobRepository,
	snapshotRepo database.SnapshotRepository) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		reader:       reader,
		enricher:     enricher,
		aggregator:   aggregator,
		exporter:     exporter,
		jobRepo:      jobRepo,
		snapshotRepo: snapshotRepo,
		dataDir:      cfg.DataDir,
		interval:     time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:  cfg.WorkerCount,
		ctx:          ctx,
		cancel:       cancel,
		taskQueue:    make(chan TaskInterface, 100),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.scanForWork()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.scanForWork()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// TriggerRefresh forces a full intelligence rebuild regardless of raw
// file state; the API refresh endpoint calls this.
func (s *Scheduler) TriggerRefresh() error {
	return s.EnqueueTask(NewRebuildIntelligenceTask(s.aggregator, s.exporter, s.jobRepo, s.snapshotRepo))
}

// scanForWork checks the data directory for an unprocessed raw drop. The
// newest file wins; older unprocessed drops are superseded, matching the
// batch model where each run fully replaces the previous one. Only the
// import is enqueued here; the import task chains the intelligence
// rebuild after its last upsert, keeping the two ordered across workers.
func (s *Scheduler) scanForWork() {
	latest, err := ingest.FindLatestRaw(s.dataDir)
	if err != nil {
		slog.Warn("Failed to scan data directory", "dir", s.dataDir, "error", err)
		return
	}
	if latest == "" {
		slog.Debug("No raw job files found", "dir", s.dataDir)
		return
	}

	s.mu.Lock()
	alreadyDone := s.lastProcessed == latest
	if !alreadyDone {
		s.lastProcessed = latest
	}
	s.mu.Unlock()

	if alreadyDone {
		slog.Debug("Latest raw file already processed", "file", latest)
		return
	}

	importTask := NewProcessImportTask(latest, s.reader, s.enricher,
		s.aggregator, s.exporter, s.jobRepo, s.snapshotRepo, s)
	if err := s.EnqueueTask(importTask); err != nil {
		slog.Warn("Failed to enqueue ProcessImportTask", "file", latest, "error", err)
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
