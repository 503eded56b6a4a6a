package tasks

// TaskSchedulerInterface is the scheduler surface the API layer and main
// use: start/stop the worker pool and hand it work.
// Example usage:
//
//	scheduler := NewScheduler(reader, enricher, aggregator, exporter, jobRepo, snapshotRepo)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.EnqueueTask(NewProcessImportTask(...))
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	TriggerRefresh() error
}
