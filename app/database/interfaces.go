package database

import (
	"time"

	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
)

type JobRepository interface {
	UpsertJob(job jobs.EnrichedJob) error
	GetAllJobs() ([]jobs.EnrichedJob, error)
	GetJobCount() (int, error)
	GetJobCountWithSalary() (int, error)
	GetLatestImportDate() (string, error)
}

type Snapshot struct {
	RunDate   string
	TotalJobs int
	Summary   intel.Summary
	CreatedAt time.Time
}

type SnapshotRepository interface {
	SaveSnapshot(summary intel.Summary) error
	GetLatestSnapshot() (*Snapshot, error)
	GetSnapshotCount() (int, error)
}
