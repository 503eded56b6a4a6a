package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pecollective/market-pulse/app/database"
	"github.com/pecollective/market-pulse/app/export"
	"github.com/pecollective/market-pulse/app/tasks"
)

func NewHandler(jobRepo database.JobRepository, snapshotRepo database.SnapshotRepository,
	scheduler tasks.TaskSchedulerInterface) *Handler {
	return &Handler{
		jobRepo:      jobRepo,
		snapshotRepo: snapshotRepo,
		scheduler:    scheduler,
	}
}

// GetJobs serves the full enriched collection in the same envelope the
// static jobs.json artifact uses, so the job board can read either.
func (h *Handler) GetJobs(c *gin.Context) {
	collection, err := h.jobRepo.GetAllJobs()
	if err != nil {
		slog.Error("Database error", "operation", "get_all_jobs", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	lastUpdated, err := h.jobRepo.GetLatestImportDate()
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_import_date", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	if lastUpdated == "" {
		lastUpdated = time.Now().In(time.Local).Format("2006-01-02")
	}

	c.JSON(http.StatusOK, export.JobsDocument{
		LastUpdated: lastUpdated,
		TotalJobs:   len(collection),
		Jobs:        collection,
	})
}

// GetIntelligence serves the latest stored market intelligence snapshot.
func (h *Handler) GetIntelligence(c *gin.Context) {
	snapshot, err := h.snapshotRepo.GetLatestSnapshot()
	if err != nil {
		slog.Error("Database error", "operation", "get_latest_snapshot", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No intelligence snapshot available yet"})
		return
	}

	c.JSON(http.StatusOK, snapshot.Summary)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if jobCount, err := h.jobRepo.GetJobCount(); err == nil {
		health["jobs"] = jobCount
	}

	if snapshotCount, err := h.snapshotRepo.GetSnapshotCount(); err == nil {
		health["snapshots"] = snapshotCount
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{}

	jobCount, err := h.jobRepo.GetJobCount()
	if err != nil {
		slog.Error("Database error", "operation", "get_job_count", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}
	stats["total_jobs"] = jobCount

	if withSalary, err := h.jobRepo.GetJobCountWithSalary(); err == nil {
		stats["jobs_with_salary"] = withSalary
	}

	if lastImport, err := h.jobRepo.GetLatestImportDate(); err == nil && lastImport != "" {
		stats["last_import_date"] = lastImport
	}

	if snapshot, err := h.snapshotRepo.GetLatestSnapshot(); err == nil && snapshot != nil {
		stats["last_intelligence_run"] = snapshot.RunDate
	}

	c.JSON(http.StatusOK, stats)
}

// APIRefresh enqueues a full intelligence rebuild. Import happens via the
// directory watch; this endpoint only forces regeneration of artifacts.
func (h *Handler) APIRefresh(c *gin.Context) {
	if err := h.scheduler.TriggerRefresh(); err != nil {
		slog.Error("Error enqueueing rebuild task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue rebuild task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Intelligence rebuild enqueued successfully",
	})
}
