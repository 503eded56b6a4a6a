package jobs

import (
	"fmt"
	"time"
)

// importWeek formats t as "2025-W07": the Monday-based week of the year,
// where days before the year's first Monday fall into week 0. This matches
// the historical import_week values in the master database (strftime %W),
// which differ from ISO 8601 weeks around year boundaries.
func importWeek(t time.Time) string {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	week := (t.YearDay() - 1 + 7 - daysSinceMonday) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}
