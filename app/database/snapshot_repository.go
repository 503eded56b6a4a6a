package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pecollective/market-pulse/app/intel"
)

var _ SnapshotRepository = (*SnapshotRepositoryImpl)(nil)

// SnapshotRepositoryImpl stores each intelligence run as a JSON document.
// Runs are append-only; the latest one is the published summary and older
// rows remain for week-over-week comparisons.
type SnapshotRepositoryImpl struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SnapshotRepositoryImpl {
	return &SnapshotRepositoryImpl{db: db}
}

func (r *SnapshotRepositoryImpl) SaveSnapshot(summary intel.Summary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT INTO intelligence_snapshots (run_date, total_jobs, summary)
		VALUES (?, ?, ?)`,
		summary.Date, summary.TotalJobs, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

func (r *SnapshotRepositoryImpl) GetLatestSnapshot() (*Snapshot, error) {
	var snap Snapshot
	var raw string

	err := r.db.QueryRow(`
		SELECT run_date, total_jobs, summary, created_at
		FROM intelligence_snapshots
		ORDER BY id DESC
		LIMIT 1`).Scan(&snap.RunDate, &snap.TotalJobs, &raw, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}

	if err := json.Unmarshal([]byte(raw), &snap.Summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot summary: %w", err)
	}

	return &snap, nil
}

func (r *SnapshotRepositoryImpl) GetSnapshotCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM intelligence_snapshots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}
