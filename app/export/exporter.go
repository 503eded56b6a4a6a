package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pecollective/market-pulse/app/intel"
	"github.com/pecollective/market-pulse/app/jobs"
)

// Exporter writes the pipeline's data products for the static renderers:
// jobs.json for the live board, a dated CSV for the page generators,
// market_intelligence.json for the insights charts, and the compensation
// report pair.
type Exporter struct {
	outputDir string
	now       func() time.Time
}

func NewExporter(outputDir string) *Exporter {
	return &Exporter{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// JobsDocument is the jobs.json envelope consumed by the live job board.
type JobsDocument struct {
	LastUpdated string             `json:"last_updated"`
	TotalJobs   int                `json:"total_jobs"`
	Jobs        []jobs.EnrichedJob `json:"jobs"`
}

// WriteAll renders every artifact for one pipeline run and returns the
// paths written.
func (e *Exporter) WriteAll(collection []jobs.EnrichedJob, summary intel.Summary) ([]string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var written []string

	jobsPath := filepath.Join(e.outputDir, "jobs.json")
	if err := e.writeJSON(jobsPath, JobsDocument{
		LastUpdated: e.now().Format("2006-01-02"),
		TotalJobs:   len(collection),
		Jobs:        collection,
	}); err != nil {
		return written, err
	}
	written = append(written, jobsPath)

	csvPath := filepath.Join(e.outputDir, fmt.Sprintf("ai_jobs_%s.csv", e.now().Format("20060102")))
	if err := e.writeCSV(csvPath, collection); err != nil {
		return written, err
	}
	written = append(written, csvPath)

	intelPath := filepath.Join(e.outputDir, "market_intelligence.json")
	if err := e.writeJSON(intelPath, summary); err != nil {
		return written, err
	}
	written = append(written, intelPath)

	analysis := AnalyzeCompensation(collection, e.now())

	compPath := filepath.Join(e.outputDir, "comp_analysis.json")
	if err := e.writeJSON(compPath, analysis); err != nil {
		return written, err
	}
	written = append(written, compPath)

	newsletterPath := filepath.Join(e.outputDir, "comp_newsletter_section.md")
	if err := os.WriteFile(newsletterPath, []byte(RenderNewsletter(analysis, e.now())), 0o644); err != nil {
		return written, fmt.Errorf("failed to write newsletter section: %w", err)
	}
	written = append(written, newsletterPath)

	return written, nil
}

func (e *Exporter) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
