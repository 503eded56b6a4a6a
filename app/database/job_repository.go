package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/pecollective/market-pulse/app/jobs"
)

var _ JobRepository = (*JobRepositoryImpl)(nil)

// JobRepositoryImpl persists enriched jobs in the sqlite master table.
// List-valued fields (skills, red flags, buzzwords) are stored comma
// joined, the same flattening the weekly CSV export uses.
type JobRepositoryImpl struct {
	db *DB
}

func NewJobRepository(db *DB) *JobRepositoryImpl {
	return &JobRepositoryImpl{db: db}
}

// UpsertJob inserts the job, replacing any earlier import of the same
// posting (matched by source URL). Postings without a URL are always
// inserted; there is nothing to match them on.
func (r *JobRepositoryImpl) UpsertJob(job jobs.EnrichedJob) error {
	query := `
		INSERT INTO jobs (
			job_id, title, company, location, metro, remote_type,
			salary_min, salary_max, salary_type,
			experience_level, seniority, job_category, skills_tags,
			is_tech, company_stage, data_quality_score, data_quality,
			red_flags, buzzwords, date_posted, date_scraped,
			import_date, import_week, source, source_url, description
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if job.SourceURL != "" {
		query += `
		ON CONFLICT (source_url) WHERE source_url <> '' DO UPDATE SET
			job_id = excluded.job_id,
			title = excluded.title,
			company = excluded.company,
			location = excluded.location,
			metro = excluded.metro,
			remote_type = excluded.remote_type,
			salary_min = excluded.salary_min,
			salary_max = excluded.salary_max,
			salary_type = excluded.salary_type,
			experience_level = excluded.experience_level,
			seniority = excluded.seniority,
			job_category = excluded.job_category,
			skills_tags = excluded.skills_tags,
			is_tech = excluded.is_tech,
			company_stage = excluded.company_stage,
			data_quality_score = excluded.data_quality_score,
			data_quality = excluded.data_quality,
			red_flags = excluded.red_flags,
			buzzwords = excluded.buzzwords,
			date_posted = excluded.date_posted,
			import_date = excluded.import_date,
			import_week = excluded.import_week,
			description = excluded.description`
	}

	_, err := r.db.Exec(query,
		job.JobID, job.Title, job.Company, job.Location, job.Metro, job.RemoteType,
		job.SalaryMin, job.SalaryMax, job.SalaryType,
		job.ExperienceLevel, job.Seniority, job.JobCategory, strings.Join(job.SkillsTags, ","),
		job.IsTech, job.CompanyStage, job.DataQualityScore, job.DataQuality,
		strings.Join(job.RedFlags, ","), strings.Join(job.Buzzwords, ","),
		job.DatePosted, job.DateScraped,
		job.ImportDate, job.ImportWeek, job.Source, job.SourceURL, job.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert job: %w", err)
	}

	return nil
}

// GetAllJobs returns every enriched job, newest import first.
func (r *JobRepositoryImpl) GetAllJobs() ([]jobs.EnrichedJob, error) {
	rows, err := r.db.Query(`
		SELECT job_id, title, company, location, metro, remote_type,
		       salary_min, salary_max, salary_type,
		       experience_level, seniority, job_category, skills_tags,
		       is_tech, company_stage, data_quality_score, data_quality,
		       red_flags, buzzwords, date_posted, date_scraped,
		       import_date, import_week, source, source_url, description
		FROM jobs
		ORDER BY import_date DESC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	var collection []jobs.EnrichedJob
	for rows.Next() {
		var job jobs.EnrichedJob
		var metro, datePosted sql.NullString
		var salaryMin, salaryMax sql.NullInt64
		var skills, redFlags, buzzwords string

		err := rows.Scan(
			&job.JobID, &job.Title, &job.Company, &job.Location, &metro, &job.RemoteType,
			&salaryMin, &salaryMax, &job.SalaryType,
			&job.ExperienceLevel, &job.Seniority, &job.JobCategory, &skills,
			&job.IsTech, &job.CompanyStage, &job.DataQualityScore, &job.DataQuality,
			&redFlags, &buzzwords, &datePosted, &job.DateScraped,
			&job.ImportDate, &job.ImportWeek, &job.Source, &job.SourceURL, &job.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}

		if metro.Valid {
			job.Metro = &metro.String
		}
		if datePosted.Valid {
			job.DatePosted = &datePosted.String
		}
		if salaryMin.Valid {
			v := int(salaryMin.Int64)
			job.SalaryMin = &v
		}
		if salaryMax.Valid {
			v := int(salaryMax.Int64)
			job.SalaryMax = &v
		}
		job.MinAmount = job.SalaryMin
		job.MaxAmount = job.SalaryMax
		job.SkillsTags = splitList(skills)
		job.RedFlags = splitList(redFlags)
		job.Buzzwords = splitList(buzzwords)
		job.IsRemote = job.RemoteType == "remote"
		job.HasDescription = len(job.Description) > 100
		job.HasSalary = job.SalaryMin != nil || job.SalaryMax != nil
		job.WeekAdded = job.ImportDate
		job.JobURLDirect = job.SourceURL
		if len(job.Description) > 500 {
			job.DescriptionSnippet = job.Description[:500]
		} else {
			job.DescriptionSnippet = job.Description
		}

		collection = append(collection, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return collection, nil
}

func (r *JobRepositoryImpl) GetJobCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM jobs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *JobRepositoryImpl) GetJobCountWithSalary() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM jobs WHERE salary_max IS NOT NULL`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs with salary: %w", err)
	}
	return count, nil
}

func (r *JobRepositoryImpl) GetLatestImportDate() (string, error) {
	var date sql.NullString
	err := r.db.QueryRow(`SELECT MAX(import_date) FROM jobs`).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to get latest import date: %w", err)
	}
	return date.String, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
