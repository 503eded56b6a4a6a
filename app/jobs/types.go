package jobs

// Job record types

// RawJob is one scraped posting as delivered by the upstream scraper.
// Every field is optional: string fields use "" for absent, numeric and
// boolean fields use nil. The ingest reader is responsible for mapping
// whatever columns are present onto this struct.
type RawJob struct {
	ID           string
	Title        string
	Company      string
	Location     string
	Description  string
	MinAmount    *float64
	MaxAmount    *float64
	Interval     string
	DatePosted   string
	Site         string
	JobURL       string
	JobURLDirect string
	IsRemote     *bool
}

// EnrichedJob is the classified form of one RawJob. It is immutable after
// the enricher builds it; downstream page generators consume it as-is via
// jobs.json and the weekly CSV, so field names and JSON keys are part of
// the published data contract.
type EnrichedJob struct {
	JobID    string  `json:"job_id"`
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Location string  `json:"location"`
	Metro    *string `json:"metro"`

	RemoteType string `json:"remote_type"`
	IsRemote   bool   `json:"is_remote"`

	SalaryMin *int `json:"salary_min"`
	SalaryMax *int `json:"salary_max"`
	// min_amount/max_amount duplicate salary_min/salary_max; older page
	// generators still read the raw column names.
	MinAmount  *int   `json:"min_amount"`
	MaxAmount  *int   `json:"max_amount"`
	SalaryType string `json:"salary_type"`

	ExperienceLevel string   `json:"experience_level"`
	Seniority       string   `json:"seniority"`
	JobCategory     string   `json:"job_category"`
	SkillsTags      []string `json:"skills_tags"`
	IsTech          bool     `json:"is_tech"`
	CompanyStage    string   `json:"company_stage"`

	DataQualityScore int    `json:"data_quality_score"`
	DataQuality      string `json:"data_quality"`
	HasDescription   bool   `json:"has_description"`
	HasSalary        bool   `json:"has_salary"`

	RedFlags  []string `json:"red_flags"`
	Buzzwords []string `json:"buzzwords"`

	DatePosted  *string `json:"date_posted"`
	DateScraped string  `json:"date_scraped"`
	ImportDate  string  `json:"import_date"`
	ImportWeek  string  `json:"import_week"`
	WeekAdded   string  `json:"week_added"`

	Source       string `json:"source"`
	SourceURL    string `json:"source_url"`
	JobURLDirect string `json:"job_url_direct"`

	Description        string `json:"description"`
	DescriptionSnippet string `json:"description_snippet"`
}

// Data quality labels and thresholds.
const (
	QualityPremium = "Premium"
	QualityGood    = "Good"
	QualityBasic   = "Basic"

	premiumThreshold = 85
	goodThreshold    = 55
)

// QualityLabel converts a 0-100 quality score to its label.
func QualityLabel(score int) string {
	switch {
	case score >= premiumThreshold:
		return QualityPremium
	case score >= goodThreshold:
		return QualityGood
	default:
		return QualityBasic
	}
}
