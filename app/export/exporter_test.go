package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
)

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)
	e.now = func() time.Time { return testNow }

	metro := "San Francisco"
	collection := []jobs.EnrichedJob{
		{
			JobID:       "in-1",
			Title:       "ML Engineer",
			Company:     "Acme",
			JobCategory: "AI/ML Engineer",
			Seniority:   "Mid",
			RemoteType:  "remote",
			Metro:       &metro,
			SalaryMin:   intPtr(140000),
			SalaryMax:   intPtr(180000),
			SkillsTags:  []string{"PyTorch", "AWS"},
		},
	}
	summary := intel.Summary{Date: "2025-02-14", TotalJobs: 1}

	written, err := e.WriteAll(collection, summary)
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}

	expected := []string{
		"jobs.json",
		"ai_jobs_20250214.csv",
		"market_intelligence.json",
		"comp_analysis.json",
		"comp_newsletter_section.md",
	}
	if len(written) != len(expected) {
		t.Fatalf("Expected %d artifacts, got %d: %v", len(expected), len(written), written)
	}
	for i, name := range expected {
		if filepath.Base(written[i]) != name {
			t.Errorf("Expected artifact %q, got %q", name, filepath.Base(written[i]))
		}
		if _, err := os.Stat(written[i]); err != nil {
			t.Errorf("Expected %s to exist: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "jobs.json"))
	if err != nil {
		t.Fatal(err)
	}
	var doc JobsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("jobs.json is not valid JSON: %v", err)
	}
	if doc.LastUpdated != "2025-02-14" || doc.TotalJobs != 1 {
		t.Errorf("Unexpected jobs.json envelope: %+v", doc)
	}
	if len(doc.Jobs) != 1 || doc.Jobs[0].Title != "ML Engineer" {
		t.Errorf("Unexpected jobs payload: %+v", doc.Jobs)
	}

	csvData, err := os.ReadFile(filepath.Join(dir, "ai_jobs_20250214.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "job_id,title,company") {
		t.Errorf("Unexpected CSV header: %q", lines[0])
	}
	// List fields flatten to comma-joined strings
	if !strings.Contains(lines[1], `"PyTorch,AWS"`) {
		t.Errorf("Expected flattened skills list, got %q", lines[1])
	}
}

func TestWriteAllEmptyCollection(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)
	e.now = func() time.Time { return testNow }

	written, err := e.WriteAll(nil, intel.Summary{Date: "2025-02-14"})
	if err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	if len(written) != 5 {
		t.Errorf("Expected all artifacts written for empty collection, got %v", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, "comp_analysis.json"))
	if err != nil {
		t.Fatal(err)
	}
	var analysis CompAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		t.Fatalf("comp_analysis.json is not valid JSON: %v", err)
	}
	if analysis.TotalRecords != 0 {
		t.Errorf("Expected empty comp analysis, got %+v", analysis)
	}
}
