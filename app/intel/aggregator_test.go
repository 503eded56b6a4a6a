package intel

import (
	"reflect"
	"testing"
	"time"

	"github.com/pecollective/market-pulse/app/jobs"
)

func testAggregator() *Aggregator {
	a := NewAggregator(jobs.DefaultRuleset())
	a.now = func() time.Time {
		return time.Date(2025, 2, 14, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func intPtr(v int) *int { return &v }

func salaryJob(category, seniority string, salaryMax int) jobs.EnrichedJob {
	return jobs.EnrichedJob{
		Title:       category,
		JobCategory: category,
		Seniority:   seniority,
		SalaryMax:   intPtr(salaryMax),
		RemoteType:  "remote",
	}
}

func TestRunSalaryStats(t *testing.T) {
	a := testAggregator()

	collection := []jobs.EnrichedJob{
		salaryJob("AI/ML Engineer", "Senior", 100000),
		salaryJob("AI/ML Engineer", "Senior", 120000),
		salaryJob("AI/ML Engineer", "Mid", 90000),
		salaryJob("Data Scientist", "Senior", 200000),
		salaryJob("Data Scientist", "Mid", 110000),
	}

	summary := a.Run(collection)

	expected := map[string]int{
		"min":               90000,
		"max":               200000,
		"median":            110000,
		"avg":               124000,
		"count_with_salary": 5,
	}
	if !reflect.DeepEqual(summary.SalaryStats, expected) {
		t.Errorf("SalaryStats = %v, expected %v", summary.SalaryStats, expected)
	}

	senior := summary.SalaryBySeniority["Senior"]
	if senior.Count != 3 {
		t.Errorf("Expected 3 senior salaries, got %d", senior.Count)
	}
	// Sorted [100000 120000 200000]: median is the middle element
	if senior.Median != 120000 {
		t.Errorf("Expected senior median 120000, got %d", senior.Median)
	}
	if senior.Avg != 140000 {
		t.Errorf("Expected senior avg 140000, got %d", senior.Avg)
	}
}

func TestRunSkipsZeroAndMissingSalaries(t *testing.T) {
	a := testAggregator()

	collection := []jobs.EnrichedJob{
		salaryJob("AI/ML Engineer", "Mid", 150000),
		{Title: "a", JobCategory: "AI/ML Engineer", Seniority: "Mid", RemoteType: "remote"},
		{Title: "b", JobCategory: "AI/ML Engineer", Seniority: "Mid", RemoteType: "remote", SalaryMax: intPtr(0)},
	}

	summary := a.Run(collection)
	if summary.SalaryStats["count_with_salary"] != 1 {
		t.Errorf("Expected 1 counted salary, got %d", summary.SalaryStats["count_with_salary"])
	}
}

func TestRunEmptyCollection(t *testing.T) {
	a := testAggregator()

	summary := a.Run(nil)

	if summary.TotalJobs != 0 {
		t.Errorf("Expected 0 total jobs, got %d", summary.TotalJobs)
	}
	if summary.TechPercentage != 0 {
		t.Errorf("Expected 0 tech percentage, got %f", summary.TechPercentage)
	}
	if summary.SalaryStats == nil || len(summary.SalaryStats) != 0 {
		t.Errorf("Expected empty (non-nil) salary stats, got %v", summary.SalaryStats)
	}
	if summary.Date != "2025-02-14" {
		t.Errorf("Expected run date '2025-02-14', got %q", summary.Date)
	}
}

func TestRunBreakdowns(t *testing.T) {
	a := testAggregator()

	sf := "San Francisco"
	collection := []jobs.EnrichedJob{
		{
			Title:           "a",
			JobCategory:     "AI/ML Engineer",
			Seniority:       "Senior",
			ExperienceLevel: "senior",
			RemoteType:      "remote",
			Metro:           &sf,
			CompanyStage:    "Unknown",
			DataQuality:     "Premium",
			IsTech:          true,
			SkillsTags:      []string{"PyTorch", "AWS"},
			Buzzwords:       []string{"scalable"},
			RedFlags:        []string{"vague_compensation"},
		},
		{
			Title:           "b",
			JobCategory:     "Data Scientist",
			Seniority:       "Mid",
			ExperienceLevel: "mid",
			RemoteType:      "onsite",
			CompanyStage:    "Unknown",
			DataQuality:     "Basic",
			SkillsTags:      []string{"PyTorch"},
		},
		{
			Title:           "c",
			JobCategory:     "AI/ML Engineer",
			Seniority:       "Mid",
			ExperienceLevel: "mid",
			RemoteType:      "remote",
			CompanyStage:    "Unknown",
			DataQuality:     "Basic",
			IsTech:          true,
		},
	}

	summary := a.Run(collection)

	if summary.TotalJobs != 3 {
		t.Errorf("Expected 3 total jobs, got %d", summary.TotalJobs)
	}
	if summary.Categories["AI/ML Engineer"] != 2 || summary.Categories["Data Scientist"] != 1 {
		t.Errorf("Unexpected categories: %v", summary.Categories)
	}
	if summary.Skills["PyTorch"] != 2 {
		t.Errorf("Expected PyTorch counted twice, got %d", summary.Skills["PyTorch"])
	}
	if summary.RemoteBreakdown["remote"] != 2 || summary.RemoteBreakdown["onsite"] != 1 {
		t.Errorf("Unexpected remote breakdown: %v", summary.RemoteBreakdown)
	}
	if summary.TopMetros["San Francisco"] != 1 {
		t.Errorf("Unexpected metros: %v", summary.TopMetros)
	}
	if summary.TechCompanies != 2 {
		t.Errorf("Expected 2 tech companies, got %d", summary.TechCompanies)
	}
	// 2/3 rounded to one decimal
	if summary.TechPercentage != 66.7 {
		t.Errorf("Expected tech percentage 66.7, got %f", summary.TechPercentage)
	}
	if summary.RedFlags["vague_compensation"] != 1 {
		t.Errorf("Unexpected red flags: %v", summary.RedFlags)
	}

	mlFrameworks := summary.SkillsByCategory["ML Frameworks"]
	if mlFrameworks == nil || mlFrameworks["PyTorch"] != 2 {
		t.Errorf("Expected PyTorch under ML Frameworks, got %v", summary.SkillsByCategory)
	}
	cloud := summary.SkillsByCategory["Cloud/Infrastructure"]
	if cloud == nil || cloud["AWS"] != 1 {
		t.Errorf("Expected AWS under Cloud/Infrastructure, got %v", summary.SkillsByCategory)
	}
}

func TestRunUnknownSkillFallsBackToOther(t *testing.T) {
	a := testAggregator()

	summary := a.Run([]jobs.EnrichedJob{
		{Title: "a", JobCategory: "Other AI Role", Seniority: "Mid", RemoteType: "onsite", SkillsTags: []string{"COBOL"}},
	})

	other := summary.SkillsByCategory["Other"]
	if other == nil || other["COBOL"] != 1 {
		t.Errorf("Expected unmapped skill under Other, got %v", summary.SkillsByCategory)
	}
}
