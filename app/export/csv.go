package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pecollective/market-pulse/app/jobs"
)

// Column order matches the historical weekly CSV; the page generators
// address columns by name but diffing against old exports relies on it.
var csvHeader = []string{
	"job_id", "title", "company", "location", "metro",
	"remote_type", "is_remote",
	"salary_min", "salary_max", "min_amount", "max_amount", "salary_type",
	"experience_level", "seniority", "job_category", "skills_tags",
	"is_tech", "company_stage", "data_quality_score", "data_quality",
	"has_description", "has_salary", "red_flags", "buzzwords",
	"date_posted", "date_scraped", "import_date", "import_week", "week_added",
	"source", "source_url", "job_url_direct",
	"description", "description_snippet",
}

// writeCSV renders the dated weekly export. List fields are flattened to
// comma-joined strings.
func (e *Exporter) writeCSV(path string, collection []jobs.EnrichedJob) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, job := range collection {
		row := []string{
			job.JobID, job.Title, job.Company, job.Location, optStr(job.Metro),
			job.RemoteType, strconv.FormatBool(job.IsRemote),
			optInt(job.SalaryMin), optInt(job.SalaryMax), optInt(job.MinAmount), optInt(job.MaxAmount), job.SalaryType,
			job.ExperienceLevel, job.Seniority, job.JobCategory, strings.Join(job.SkillsTags, ","),
			strconv.FormatBool(job.IsTech), job.CompanyStage, strconv.Itoa(job.DataQualityScore), job.DataQuality,
			strconv.FormatBool(job.HasDescription), strconv.FormatBool(job.HasSalary),
			strings.Join(job.RedFlags, ","), strings.Join(job.Buzzwords, ","),
			optStr(job.DatePosted), job.DateScraped, job.ImportDate, job.ImportWeek, job.WeekAdded,
			job.Source, job.SourceURL, job.JobURLDirect,
			job.Description, job.DescriptionSnippet,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func optStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
