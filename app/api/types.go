package api

import (
	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/tasks"
)

type Handler struct {
	jobRepo      database.JobRepository
	snapshotRepo database.SnapshotRepository
	scheduler    tasks.TaskSchedulerInterface
}
