package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pecollective/market-pulse/app/jobs"
)

func TestRun(t *testing.T) {
	csv := `id,title,company,location,description,min_amount,max_amount,interval,date_posted,site,job_url,job_url_direct,is_remote
in-1,ML Engineer,Acme,"Austin, TX",Building ML systems,150000,200000,yearly,2025-02-10,indeed,https://example.com/1,,true
in-2,Data Scientist,Initech,,nan,nan,,hourly,,linkedin,,https://example.com/2,false
`

	r := NewReader()
	raws, err := r.Run(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(raws) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(raws))
	}

	first := raws[0]
	if first.Title != "ML Engineer" || first.Company != "Acme" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if first.MinAmount == nil || *first.MinAmount != 150000 {
		t.Errorf("Expected min amount 150000, got %v", first.MinAmount)
	}
	if first.IsRemote == nil || !*first.IsRemote {
		t.Errorf("Expected is_remote true, got %v", first.IsRemote)
	}

	second := raws[1]
	if second.MinAmount != nil {
		t.Errorf("Expected nan min amount to be nil, got %v", second.MinAmount)
	}
	if second.IsRemote == nil || *second.IsRemote {
		t.Errorf("Expected is_remote false, got %v", second.IsRemote)
	}
}

func TestRunMissingColumns(t *testing.T) {
	csv := `title,company
ML Engineer,Acme
`

	r := NewReader()
	raws, err := r.Run(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(raws) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(raws))
	}
	if raws[0].Title != "ML Engineer" {
		t.Errorf("Expected title parsed, got %q", raws[0].Title)
	}
	if raws[0].Location != "" || raws[0].MinAmount != nil {
		t.Errorf("Expected absent columns to read as empty, got %+v", raws[0])
	}
}

func TestRunShortRows(t *testing.T) {
	csv := `title,company,location
ML Engineer,Acme
`

	r := NewReader()
	raws, err := r.Run(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(raws) != 1 || raws[0].Location != "" {
		t.Errorf("Expected short row padded with empties, got %+v", raws)
	}
}

func TestRunEmpty(t *testing.T) {
	r := NewReader()
	if _, err := r.Run(strings.NewReader("")); err == nil {
		t.Error("Expected error for CSV without a header")
	}
}

func TestRunStripsHTMLDescriptions(t *testing.T) {
	csv := `title,description
ML Engineer,"<p>Build <b>ML</b> systems</p><script>alert(1)</script>"
`

	r := NewReader()
	raws, err := r.Run(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if raws[0].Description != "Build ML systems" {
		t.Errorf("Expected HTML stripped, got %q", raws[0].Description)
	}
}

func TestDeduplicate(t *testing.T) {
	raws := []jobs.RawJob{
		{Title: "a", JobURL: "https://example.com/1"},
		{Title: "b", JobURL: "https://example.com/2"},
		{Title: "duplicate", JobURL: "https://example.com/1"},
		{Title: "direct", JobURLDirect: "https://example.com/2"},
		{Title: "no url 1"},
		{Title: "no url 2"},
	}

	out := Deduplicate(raws)
	if len(out) != 4 {
		t.Fatalf("Expected 4 records after dedup, got %d", len(out))
	}
	// First occurrence wins
	if out[0].Title != "a" || out[1].Title != "b" {
		t.Errorf("Expected first occurrences kept, got %+v", out)
	}
	// Records without any URL are never collapsed
	if out[2].Title != "no url 1" || out[3].Title != "no url 2" {
		t.Errorf("Expected URL-less records kept, got %+v", out)
	}
}

func TestFindLatestRaw(t *testing.T) {
	dir := t.TempDir()

	latest, err := FindLatestRaw(dir)
	if err != nil {
		t.Fatalf("FindLatestRaw failed: %v", err)
	}
	if latest != "" {
		t.Errorf("Expected empty result for empty dir, got %q", latest)
	}

	for _, name := range []string{"raw_ai_jobs_20250201.csv", "raw_ai_jobs_20250214.csv", "other.csv"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("title\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	latest, err = FindLatestRaw(dir)
	if err != nil {
		t.Fatalf("FindLatestRaw failed: %v", err)
	}
	if filepath.Base(latest) != "raw_ai_jobs_20250214.csv" {
		t.Errorf("Expected newest dated file, got %q", latest)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "raw_ai_jobs_20250214.csv")
	csv := `title,job_url
ML Engineer,https://example.com/1
ML Engineer,https://example.com/1
Data Scientist,https://example.com/2
`
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewReader()
	raws, err := r.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(raws) != 2 {
		t.Errorf("Expected 2 deduplicated records, got %d", len(raws))
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text stays", "plain text stays"},
		{"<p>hello <b>world</b></p>", "hello world"},
		{"<div>a</div><style>.x{}</style><div>b</div>", "a b"},
		{"spaced   out\n\ntext", "spaced   out\n\ntext"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripHTML(tt.input); got != tt.expected {
			t.Errorf("StripHTML(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
