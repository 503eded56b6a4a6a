package export

import (
	"testing"
	"time"

	"github.com/pecollective/market-pulse/app/jobs"
)

var testNow = time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func compJob(title, category, seniority string, salaryMin, salaryMax int) jobs.EnrichedJob {
	return jobs.EnrichedJob{
		Title:       title,
		Company:     "Acme",
		JobCategory: category,
		Seniority:   seniority,
		RemoteType:  "remote",
		SalaryMin:   intPtr(salaryMin),
		SalaryMax:   intPtr(salaryMax),
	}
}

func TestAnalyzeCompensation(t *testing.T) {
	collection := []jobs.EnrichedJob{
		compJob("ML Engineer", "AI/ML Engineer", "Mid", 120000, 160000),
		compJob("Senior ML Engineer", "AI/ML Engineer", "Senior", 160000, 220000),
		compJob("Staff ML Engineer", "AI/ML Engineer", "Senior", 200000, 280000),
		compJob("Data Scientist", "Data Scientist", "Mid", 100000, 140000),
		// Outside the plausible salary window, excluded
		compJob("Intern", "AI/ML Engineer", "Entry", 0, 30000),
		compJob("Equity Heavy", "AI/ML Engineer", "Senior", 0, 2000000),
		// No salary at all
		{Title: "Mystery Role", JobCategory: "Other AI Role", Seniority: "Mid", RemoteType: "onsite"},
	}

	analysis := AnalyzeCompensation(collection, testNow)

	if analysis.TotalRecords != 7 {
		t.Errorf("Expected 7 total records, got %d", analysis.TotalRecords)
	}
	if analysis.RecordsWithSalary != 4 {
		t.Errorf("Expected 4 records with usable salary, got %d", analysis.RecordsWithSalary)
	}
	if analysis.DisclosureRate != 57.1 {
		t.Errorf("Expected 57.1%% disclosure rate, got %f", analysis.DisclosureRate)
	}

	if analysis.Overall == nil {
		t.Fatal("Expected overall stats")
	}
	// maxs sorted: [140000 160000 220000 280000]
	if analysis.Overall.MaxSalaryAvg != 200000 {
		t.Errorf("Expected max salary avg 200000, got %d", analysis.Overall.MaxSalaryAvg)
	}
	// Interpolated median between 160000 and 220000
	if analysis.Overall.MedianSalary != 190000 {
		t.Errorf("Expected median 190000, got %d", analysis.Overall.MedianSalary)
	}
	if analysis.Overall.P25 != 155000 {
		t.Errorf("Expected p25 155000, got %d", analysis.Overall.P25)
	}
	if analysis.Overall.P75 != 235000 {
		t.Errorf("Expected p75 235000, got %d", analysis.Overall.P75)
	}

	// AI/ML Engineer has 3 usable samples, Data Scientist only 1
	bucket, ok := analysis.ByCategory["AI/ML Engineer"]
	if !ok {
		t.Fatal("Expected AI/ML Engineer bucket")
	}
	if bucket.Count != 3 {
		t.Errorf("Expected bucket count 3, got %d", bucket.Count)
	}
	if _, ok := analysis.ByCategory["Data Scientist"]; ok {
		t.Error("Expected Data Scientist bucket suppressed below minimum samples")
	}

	if len(analysis.TopPayingRoles) != 4 {
		t.Fatalf("Expected 4 top paying roles, got %d", len(analysis.TopPayingRoles))
	}
	if analysis.TopPayingRoles[0].Title != "Staff ML Engineer" {
		t.Errorf("Expected highest paying role first, got %q", analysis.TopPayingRoles[0].Title)
	}
}

func TestAnalyzeCompensationEmpty(t *testing.T) {
	analysis := AnalyzeCompensation(nil, testNow)

	if analysis.RecordsWithSalary != 0 || analysis.DisclosureRate != 0 {
		t.Errorf("Expected empty analysis, got %+v", analysis)
	}
	if analysis.Overall != nil {
		t.Error("Expected nil overall stats for empty collection")
	}
	if analysis.TopPayingRoles == nil || len(analysis.TopPayingRoles) != 0 {
		t.Errorf("Expected empty (non-nil) top roles, got %v", analysis.TopPayingRoles)
	}
}

func TestAnalyzeCompensationMetroBuckets(t *testing.T) {
	sf := "San Francisco"
	unknown := "Unknown"

	var collection []jobs.EnrichedJob
	for i := 0; i < 3; i++ {
		job := compJob("ML Engineer", "AI/ML Engineer", "Mid", 140000, 180000)
		job.Metro = &sf
		collection = append(collection, job)
	}
	noMetro := compJob("ML Engineer", "AI/ML Engineer", "Mid", 140000, 180000)
	collection = append(collection, noMetro)
	unknownMetro := compJob("ML Engineer", "AI/ML Engineer", "Mid", 140000, 180000)
	unknownMetro.Metro = &unknown
	collection = append(collection, unknownMetro)

	analysis := AnalyzeCompensation(collection, testNow)

	if len(analysis.ByMetro) != 1 {
		t.Fatalf("Expected only San Francisco bucket, got %v", analysis.ByMetro)
	}
	if analysis.ByMetro["San Francisco"].Count != 3 {
		t.Errorf("Expected 3 SF samples, got %d", analysis.ByMetro["San Francisco"].Count)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	tests := []struct {
		q        float64
		expected float64
	}{
		{0, 10},
		{0.5, 25},
		{0.25, 17.5},
		{1, 40},
	}

	for _, tt := range tests {
		if got := quantile(sorted, tt.q); got != tt.expected {
			t.Errorf("quantile(%v, %v) = %v, expected %v", sorted, tt.q, got, tt.expected)
		}
	}

	if got := quantile(nil, 0.5); got != 0 {
		t.Errorf("Expected 0 for empty input, got %v", got)
	}
	if got := quantile([]float64{42}, 0.9); got != 42 {
		t.Errorf("Expected single element returned, got %v", got)
	}
}
