package intel

import (
	"math"
	"sort"
	"time"

	"github.com/pecollective/market-pulse/app/jobs"
)

// Top-N truncation sizes for the published intelligence document.
const (
	topSkills    = 50
	topBuzzwords = 20
	topMetros    = 10
)

// BucketStats is the per-category / per-seniority salary slice.
type BucketStats struct {
	Median int `json:"median"`
	Avg    int `json:"avg"`
	Count  int `json:"count"`
}

// Summary is one market-intelligence run over the full enriched
// collection. Recomputed wholesale on every run; never updated in place.
// The JSON keys are the published data contract consumed by the chart and
// insights renderers.
type Summary struct {
	Date                 string                    `json:"date"`
	TotalJobs            int                       `json:"total_jobs"`
	Skills               map[string]int            `json:"skills"`
	SkillsByCategory     map[string]map[string]int `json:"skills_by_category"`
	Categories           map[string]int            `json:"categories"`
	ExperienceLevels     map[string]int            `json:"experience_levels"`
	SeniorityBreakdown   map[string]int            `json:"seniority_breakdown"`
	RemoteBreakdown      map[string]int            `json:"remote_breakdown"`
	TopMetros            map[string]int            `json:"top_metros"`
	CompanyStages        map[string]int            `json:"company_stages"`
	TechCompanies        int                       `json:"tech_companies"`
	TechPercentage       float64                   `json:"tech_percentage"`
	DataQualityBreakdown map[string]int            `json:"data_quality_breakdown"`
	// Fixed keys: min, max, median, avg, count_with_salary. Kept as a map
	// so an empty collection serializes as {} per the data contract.
	SalaryStats       map[string]int         `json:"salary_stats"`
	SalaryByCategory  map[string]BucketStats `json:"salary_by_category"`
	SalaryBySeniority map[string]BucketStats `json:"salary_by_seniority"`
	Buzzwords         map[string]int         `json:"buzzwords"`
	RedFlags          map[string]int         `json:"red_flags"`
}

// Aggregator computes a Summary from an enriched collection in one pass.
// It never mutates the input and is deterministic given the input order.
type Aggregator struct {
	skillCategories map[string]string
	now             func() time.Time
}

func NewAggregator(rules *jobs.Ruleset) *Aggregator {
	return &Aggregator{
		skillCategories: rules.SkillCategories,
		now:             time.Now,
	}
}

func (a *Aggregator) Run(collection []jobs.EnrichedJob) Summary {
	skills := NewCounter()
	buzzwords := NewCounter()
	redFlags := NewCounter()
	categories := NewCounter()
	experience := NewCounter()
	seniority := NewCounter()
	remote := NewCounter()
	metros := NewCounter()
	stages := NewCounter()
	quality := NewCounter()
	techCount := 0

	var salaries []int
	salariesByCategory := make(map[string][]int)
	salariesBySeniority := make(map[string][]int)

	for _, job := range collection {
		for _, s := range job.SkillsTags {
			skills.Add(s)
		}
		for _, b := range job.Buzzwords {
			buzzwords.Add(b)
		}
		for _, f := range job.RedFlags {
			redFlags.Add(f)
		}

		categories.Add(job.JobCategory)
		experience.Add(job.ExperienceLevel)
		seniority.Add(job.Seniority)
		remote.Add(job.RemoteType)
		if job.Metro != nil {
			metros.Add(*job.Metro)
		}
		stages.Add(job.CompanyStage)
		quality.Add(job.DataQuality)
		if job.IsTech {
			techCount++
		}

		if job.SalaryMax != nil && *job.SalaryMax != 0 {
			sal := *job.SalaryMax
			salaries = append(salaries, sal)
			salariesByCategory[job.JobCategory] = append(salariesByCategory[job.JobCategory], sal)
			salariesBySeniority[job.Seniority] = append(salariesBySeniority[job.Seniority], sal)
		}
	}

	skillsByCategory := make(map[string]map[string]int)
	for _, e := range skills.MostCommon(0) {
		category, ok := a.skillCategories[e.Key]
		if !ok {
			category = "Other"
		}
		if skillsByCategory[category] == nil {
			skillsByCategory[category] = make(map[string]int)
		}
		skillsByCategory[category][e.Key] = e.Count
	}

	techPercentage := 0.0
	if len(collection) > 0 {
		techPercentage = math.Round(float64(techCount)/float64(len(collection))*1000) / 10
	}

	return Summary{
		Date:                 a.now().Format("2006-01-02"),
		TotalJobs:            len(collection),
		Skills:               skills.TopMap(topSkills),
		SkillsByCategory:     skillsByCategory,
		Categories:           categories.TopMap(0),
		ExperienceLevels:     experience.TopMap(0),
		SeniorityBreakdown:   seniority.TopMap(0),
		RemoteBreakdown:      remote.TopMap(0),
		TopMetros:            metros.TopMap(topMetros),
		CompanyStages:        stages.TopMap(0),
		TechCompanies:        techCount,
		TechPercentage:       techPercentage,
		DataQualityBreakdown: quality.TopMap(0),
		SalaryStats:          salaryStats(salaries),
		SalaryByCategory:     bucketStats(salariesByCategory),
		SalaryBySeniority:    bucketStats(salariesBySeniority),
		Buzzwords:            buzzwords.TopMap(topBuzzwords),
		RedFlags:             redFlags.TopMap(0),
	}
}

// salaryStats computes min/max/median/avg over the collected salary_max
// values. Median is the middle element of the sorted slice (upper value
// for even lengths, no interpolation) and avg is the truncated integer
// mean; both match the historical published numbers.
func salaryStats(salaries []int) map[string]int {
	stats := make(map[string]int)
	if len(salaries) == 0 {
		return stats
	}

	sorted := append([]int(nil), salaries...)
	sort.Ints(sorted)

	stats["min"] = sorted[0]
	stats["max"] = sorted[len(sorted)-1]
	stats["median"] = sorted[len(sorted)/2]
	stats["avg"] = sum(sorted) / len(sorted)
	stats["count_with_salary"] = len(sorted)
	return stats
}

func bucketStats(buckets map[string][]int) map[string]BucketStats {
	out := make(map[string]BucketStats)
	for key, sals := range buckets {
		if len(sals) == 0 {
			continue
		}
		sorted := append([]int(nil), sals...)
		sort.Ints(sorted)
		out[key] = BucketStats{
			Median: sorted[len(sorted)/2],
			Avg:    sum(sorted) / len(sorted),
			Count:  len(sorted),
		}
	}
	return out
}

func sum(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}
