package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pecollective/market-pulse/app/jobs"
)

// Reader loads raw scrape CSVs into RawJob records. The scraper's column
// set drifts between runs, so columns are resolved by header name and any
// missing column is simply treated as absent for every record.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// Run parses one raw CSV stream. Rows shorter than the header are padded
// with empty fields rather than rejected.
func (r *Reader) Run(src io.Reader) ([]jobs.RawJob, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty CSV: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var raws []jobs.RawJob
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			slog.Warn("Skipping malformed CSV row", "line", line, "error", err)
			continue
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		raws = append(raws, jobs.RawJob{
			ID:           field("id"),
			Title:        field("title"),
			Company:      field("company"),
			Location:     field("location"),
			Description:  StripHTML(field("description")),
			MinAmount:    parseAmount(field("min_amount")),
			MaxAmount:    parseAmount(field("max_amount")),
			Interval:     field("interval"),
			DatePosted:   field("date_posted"),
			Site:         field("site"),
			JobURL:       field("job_url"),
			JobURLDirect: field("job_url_direct"),
			IsRemote:     parseBool(field("is_remote")),
		})
	}

	return raws, nil
}

// Deduplicate keeps the first record per job URL. Records without any URL
// are kept unconditionally; collapsing them would drop legitimate postings
// from sources that never set one.
func Deduplicate(raws []jobs.RawJob) []jobs.RawJob {
	seen := make(map[string]bool, len(raws))
	out := make([]jobs.RawJob, 0, len(raws))

	for _, raw := range raws {
		url := raw.JobURL
		if url == "" {
			url = raw.JobURLDirect
		}
		if url != "" {
			if seen[url] {
				continue
			}
			seen[url] = true
		}
		out = append(out, raw)
	}
	return out
}

// FindLatestRaw returns the newest raw_ai_jobs_*.csv in dir, or "" when
// none exist. The date embedded in the filename orders the drops.
func FindLatestRaw(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "raw_ai_jobs_*.csv"))
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return "", nil
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// LoadFile reads, parses and deduplicates one raw CSV file.
func (r *Reader) LoadFile(path string) ([]jobs.RawJob, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw file: %w", err)
	}
	defer f.Close()

	raws, err := r.Run(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	deduped := Deduplicate(raws)
	if dropped := len(raws) - len(deduped); dropped > 0 {
		slog.Info("Deduplicated raw postings", "file", filepath.Base(path), "dropped", dropped)
	}
	return deduped, nil
}

// parseAmount coerces a numeric cell to a float. Empty cells and the
// scraper's NaN placeholders come back nil; so do NaN/Inf values, which
// pandas writes for missing amounts.
func parseAmount(s string) *float64 {
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "none") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseBool(s string) *bool {
	switch strings.ToLower(s) {
	case "true", "t", "1", "yes":
		v := true
		return &v
	case "false", "f", "0", "no":
		v := false
		return &v
	default:
		return nil
	}
}
