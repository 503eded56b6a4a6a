package jobs

import (
	"testing"
	"time"
)

func TestImportWeek(t *testing.T) {
	tests := []struct {
		date     string
		expected string
	}{
		// 2024-01-01 is a Monday, so it opens week 1
		{"2024-01-01", "2024-W01"},
		{"2024-01-07", "2024-W01"},
		{"2024-01-08", "2024-W02"},
		// 2023-01-01 is a Sunday: days before the first Monday are week 0
		{"2023-01-01", "2023-W00"},
		{"2023-01-02", "2023-W01"},
		{"2025-02-14", "2025-W06"},
		{"2025-12-31", "2025-W52"},
	}

	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("bad test date %q: %v", tt.date, err)
		}
		if got := importWeek(d); got != tt.expected {
			t.Errorf("importWeek(%s) = %q, expected %q", tt.date, got, tt.expected)
		}
	}
}
