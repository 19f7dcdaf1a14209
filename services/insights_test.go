package services

import (
	"testing"

	"talent-scraper/models"
	"talent-scraper/utils"
)

func salaried(min, max int) *models.SalaryRange {
	return &models.SalaryRange{Min: min, Max: max}
}

func sampleListings() []*models.JobListing {
	return []*models.JobListing{
		{Title: "Senior Software Engineer", Location: "San Francisco, CA", Department: "Engineering", Salary: salaried(180000, 250000)},
		{Title: "Product Manager", Location: "New York, NY (Remote)", Department: "Product", Salary: salaried(150000, 200000)},
		{Title: "Data Scientist", Location: "Remote", Department: "Data", Salary: salaried(140000, 190000)},
		{Title: "Junior Developer", Location: "Austin, TX (Hybrid)", Department: "Engineering", Salary: salaried(80000, 110000)},
		{Title: "Senior Product Designer", Location: "Seattle, WA", Department: "Design", Salary: salaried(160000, 210000)},
		{Title: "Engineering Manager", Location: "Boston, MA", Department: "Engineering", Salary: salaried(200000, 280000)},
		{Title: "Marketing Lead", Location: "Los Angeles, CA", Department: "Marketing"},
		{Title: "Principal Engineer", Location: "Remote", Department: "Engineering", Salary: salaried(220000, 320000)},
		{Title: "Associate Product Manager", Location: "Chicago, IL", Department: "Product", Salary: salaried(90000, 120000)},
		{Title: "Staff Software Engineer", Location: "Denver, CO (Hybrid)", Department: "Engineering", Salary: salaried(200000, 270000)},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if r.TotalJobs != 10 {
		t.Errorf("TotalJobs: got %d, want 10", r.TotalJobs)
	}
	if r.Departments["Engineering"] != 5 {
		t.Errorf("Engineering count: got %d, want 5", r.Departments["Engineering"])
	}
	if r.Locations["Remote"] != 2 {
		t.Errorf("Remote location count: got %d, want 2", r.Locations["Remote"])
	}
}

func TestInsightDisclosureRate(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if r.DisclosureRate != 90.0 {
		t.Errorf("DisclosureRate: got %.2f, want 90.0", r.DisclosureRate)
	}
}

func TestInsightAvgSalary(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if r.AvgSalary == nil {
		t.Fatal("AvgSalary should not be nil")
	}
	// Floored integer means over the 9 disclosed ranges.
	if r.AvgSalary.Min != 157777 {
		t.Errorf("AvgSalary.Min: got %d, want 157777", r.AvgSalary.Min)
	}
	if r.AvgSalary.Max != 216666 {
		t.Errorf("AvgSalary.Max: got %d, want 216666", r.AvgSalary.Max)
	}
}

func TestInsightSalaryDistribution(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	want := []models.BandCount{
		{Band: "$100k-150k", Count: 2},
		{Band: "$150k-200k", Count: 2},
		{Band: "$200k-250k", Count: 2},
		{Band: "$250k+", Count: 3},
	}
	if len(r.SalaryDistribution) != len(want) {
		t.Fatalf("SalaryDistribution: got %v, want %v", r.SalaryDistribution, want)
	}

	total := 0
	for i, bc := range r.SalaryDistribution {
		if bc != want[i] {
			t.Errorf("band %d: got %+v, want %+v", i, bc, want[i])
		}
		total += bc.Count
	}
	// Bands must sum to the number of salaried listings.
	if total != 9 {
		t.Errorf("band total: got %d, want 9", total)
	}
}

func TestInsightAvgSalaryByDept(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if got := r.AvgSalaryByDept["Engineering"]; got != 211000 {
		t.Errorf("Engineering avg: got %d, want 211000", got)
	}
	if got := r.AvgSalaryByDept["Product"]; got != 140000 {
		t.Errorf("Product avg: got %d, want 140000", got)
	}
	// Marketing has no disclosed salary and must be absent.
	if _, ok := r.AvgSalaryByDept["Marketing"]; ok {
		t.Error("Marketing should not appear in AvgSalaryByDept")
	}
}

func TestInsightTopPayingJobs(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if len(r.TopPayingJobs) != 9 {
		t.Fatalf("TopPayingJobs len: got %d, want 9", len(r.TopPayingJobs))
	}
	if r.TopPayingJobs[0].Title != "Principal Engineer" {
		t.Errorf("TopPayingJobs[0]: got %q, want %q", r.TopPayingJobs[0].Title, "Principal Engineer")
	}
	for i := 1; i < len(r.TopPayingJobs); i++ {
		if r.TopPayingJobs[i].Salary.Max > r.TopPayingJobs[i-1].Salary.Max {
			t.Errorf("TopPayingJobs not sorted descending at index %d", i)
		}
	}
}

func TestInsightWorkArrangement(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	if r.WorkArrangement["Remote"] != 3 {
		t.Errorf("Remote: got %d, want 3", r.WorkArrangement["Remote"])
	}
	if r.WorkArrangement["Hybrid"] != 2 {
		t.Errorf("Hybrid: got %d, want 2", r.WorkArrangement["Hybrid"])
	}
	if r.WorkArrangement["Onsite"] != 5 {
		t.Errorf("Onsite: got %d, want 5", r.WorkArrangement["Onsite"])
	}
}

func TestInsightSeniorityLevels(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(sampleListings())

	want := map[string]int{"Entry": 2, "Senior": 2, "Lead": 3, "Principal": 2, "Mid": 1}
	for level, count := range want {
		if r.SeniorityLevels[level] != count {
			t.Errorf("%s: got %d, want %d", level, r.SeniorityLevels[level], count)
		}
	}
}

func TestClassifySeniorityPriority(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Junior Engineering Manager", "Entry"},
		{"Senior Staff Engineer", "Senior"},
		{"Head of Design", "Lead"},
		{"Staff Software Engineer", "Principal"},
		{"Software Engineer", "Mid"},
		{"Sr. Backend Engineer", "Senior"},
	}
	for _, tt := range tests {
		if got := ClassifySeniority(tt.title); got != tt.want {
			t.Errorf("ClassifySeniority(%q) = %q; want %q", tt.title, got, tt.want)
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(utils.NewLogger())
	r := svc.Generate(nil)

	if r.TotalJobs != 0 {
		t.Errorf("expected 0 total jobs for empty input")
	}
	if r.DisclosureRate != 0.0 {
		t.Errorf("DisclosureRate for empty input: got %.2f, want 0.0", r.DisclosureRate)
	}
	if r.AvgSalary != nil {
		t.Error("AvgSalary should be nil for empty input")
	}
}
