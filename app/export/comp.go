package export

import (
	"sort"
	"time"

	"github.com/pecollective/market-pulse/app/jobs"
)

// Compensation benchmarking over the enriched collection, feeding the
// newsletter section and comp_analysis.json. Unlike the intelligence
// summary's truncating median, this report uses interpolated percentiles;
// both behaviors are part of their respective published outputs.

// Salary window for the comp report; values outside it are treated as
// scraper noise (wrong currency, hourly leftovers, equity totals).
const (
	compSalaryFloor   = 50_000
	compSalaryCeiling = 1_000_000
)

// Buckets need at least this many samples to be published.
const compMinSamples = 3

type CompBucket struct {
	Count      int `json:"count"`
	MinBaseAvg int `json:"min_base_avg"`
	MaxBaseAvg int `json:"max_base_avg"`
	Median     int `json:"median"`
}

type CompOverall struct {
	MinSalaryAvg int `json:"min_salary_avg"`
	MaxSalaryAvg int `json:"max_salary_avg"`
	MedianSalary int `json:"median_salary"`
	P25          int `json:"p25"`
	P75          int `json:"p75"`
	P90          int `json:"p90"`
}

type TopRole struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	SalaryMin   int    `json:"salary_min"`
	SalaryMax   int    `json:"salary_max"`
	JobCategory string `json:"job_category"`
	Seniority   string `json:"seniority"`
}

type CompAnalysis struct {
	GeneratedAt       string                `json:"generated_at"`
	TotalRecords      int                   `json:"total_records"`
	RecordsWithSalary int                   `json:"records_with_salary"`
	DisclosureRate    float64               `json:"disclosure_rate"`
	ByCategory        map[string]CompBucket `json:"by_category"`
	BySeniority       map[string]CompBucket `json:"by_seniority"`
	ByMetro           map[string]CompBucket `json:"by_metro"`
	ByRemote          map[string]CompBucket `json:"by_remote"`
	TopPayingRoles    []TopRole             `json:"top_paying_roles"`
	Overall           *CompOverall          `json:"overall_stats"`
}

type compRecord struct {
	job       jobs.EnrichedJob
	salaryMin int
	salaryMax int
}

// AnalyzeCompensation builds the comp report from the full collection.
func AnalyzeCompensation(collection []jobs.EnrichedJob, now time.Time) CompAnalysis {
	var records []compRecord
	for _, job := range collection {
		if job.SalaryMax == nil || *job.SalaryMax <= compSalaryFloor || *job.SalaryMax >= compSalaryCeiling {
			continue
		}
		rec := compRecord{job: job, salaryMax: *job.SalaryMax}
		if job.SalaryMin != nil {
			rec.salaryMin = *job.SalaryMin
		}
		records = append(records, rec)
	}

	analysis := CompAnalysis{
		GeneratedAt:       now.Format(time.RFC3339),
		TotalRecords:      len(collection),
		RecordsWithSalary: len(records),
		ByCategory:        make(map[string]CompBucket),
		BySeniority:       make(map[string]CompBucket),
		ByMetro:           make(map[string]CompBucket),
		ByRemote:          make(map[string]CompBucket),
		TopPayingRoles:    []TopRole{},
	}

	if len(collection) > 0 {
		analysis.DisclosureRate = round1(float64(len(records)) / float64(len(collection)) * 100)
	}
	if len(records) == 0 {
		return analysis
	}

	mins := make([]float64, len(records))
	maxs := make([]float64, len(records))
	for i, rec := range records {
		mins[i] = float64(rec.salaryMin)
		maxs[i] = float64(rec.salaryMax)
	}
	sort.Float64s(maxs)

	analysis.Overall = &CompOverall{
		MinSalaryAvg: roundInt(mean(mins)),
		MaxSalaryAvg: roundInt(mean(maxs)),
		MedianSalary: roundInt(quantile(maxs, 0.5)),
		P25:          roundInt(quantile(maxs, 0.25)),
		P75:          roundInt(quantile(maxs, 0.75)),
		P90:          roundInt(quantile(maxs, 0.90)),
	}

	analysis.ByCategory = compBuckets(records, func(r compRecord) string { return r.job.JobCategory })
	analysis.BySeniority = compBuckets(records, func(r compRecord) string { return r.job.Seniority })
	analysis.ByRemote = compBuckets(records, func(r compRecord) string { return r.job.RemoteType })
	analysis.ByMetro = compBuckets(records, func(r compRecord) string {
		if r.job.Metro == nil || *r.job.Metro == "Unknown" {
			return ""
		}
		return *r.job.Metro
	})

	analysis.TopPayingRoles = topPayingRoles(records, 10)

	return analysis
}

func compBuckets(records []compRecord, key func(compRecord) string) map[string]CompBucket {
	grouped := make(map[string][]compRecord)
	for _, rec := range records {
		k := key(rec)
		if k == "" {
			continue
		}
		grouped[k] = append(grouped[k], rec)
	}

	out := make(map[string]CompBucket)
	for k, recs := range grouped {
		if len(recs) < compMinSamples {
			continue
		}
		mins := make([]float64, len(recs))
		maxs := make([]float64, len(recs))
		for i, rec := range recs {
			mins[i] = float64(rec.salaryMin)
			maxs[i] = float64(rec.salaryMax)
		}
		sort.Float64s(maxs)
		out[k] = CompBucket{
			Count:      len(recs),
			MinBaseAvg: roundInt(mean(mins)),
			MaxBaseAvg: roundInt(mean(maxs)),
			Median:     roundInt(quantile(maxs, 0.5)),
		}
	}
	return out
}

// topPayingRoles returns the n highest salary_max records, stable on ties.
func topPayingRoles(records []compRecord, n int) []TopRole {
	sorted := append([]compRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].salaryMax > sorted[j].salaryMax
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	roles := make([]TopRole, 0, len(sorted))
	for _, rec := range sorted {
		roles = append(roles, TopRole{
			Title:       rec.job.Title,
			Company:     rec.job.Company,
			SalaryMin:   rec.salaryMin,
			SalaryMax:   rec.salaryMax,
			JobCategory: rec.job.JobCategory,
			Seniority:   rec.job.Seniority,
		})
	}
	return roles
}

// quantile computes the linearly interpolated q-quantile of sorted values.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lower := int(pos)
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total / float64(len(xs))
}

func roundInt(v float64) int {
	if v < 0 {
		return int(v - 0.5)
	}
	return int(v + 0.5)
}

func round1(v float64) float64 {
	return float64(roundInt(v*10)) / 10
}
