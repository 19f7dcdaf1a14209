package services

import (
	"fmt"
	"sort"
	"strings"

	"talent-scraper/models"
	"talent-scraper/utils"
)

// salaryBands are the fixed distribution buckets, keyed by a listing's
// salary maximum. Order matters: bands are reported ascending.
var salaryBands = []struct {
	label string
	upper int
}{
	{"$0-50k", 50_000},
	{"$50k-100k", 100_000},
	{"$100k-150k", 150_000},
	{"$150k-200k", 200_000},
	{"$200k-250k", 250_000},
	{"$250k+", 0},
}

// seniorityGroups classify a title into a level. Groups are checked in
// order; the first group with a matching keyword wins, and titles matching
// nothing are Mid. Entry runs first so "Junior Engineering Manager" lands
// in Entry, not Lead.
var seniorityGroups = []struct {
	level    string
	keywords []string
}{
	{"Entry", []string{"junior", "entry", "associate", "intern", "graduate"}},
	{"Senior", []string{"senior", "sr."}},
	{"Lead", []string{"lead", "manager", "head", "director"}},
	{"Principal", []string{"principal", "staff", "architect", "expert"}},
}

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the full analytics projection over a listing collection.
// The result is always a fresh value; callers may cache it but this service
// never does.
func (s *InsightService) Generate(listings []*models.JobListing) *models.AnalyticsSummary {
	summary := &models.AnalyticsSummary{
		Departments:        make(map[string]int),
		Locations:          make(map[string]int),
		SalaryDistribution: []models.BandCount{},
		AvgSalaryByDept:    make(map[string]int),
		TopPayingJobs:      []*models.JobListing{},
		WorkArrangement:    make(map[string]int),
		SeniorityLevels:    make(map[string]int),
	}

	if len(listings) == 0 {
		return summary
	}

	summary.TotalJobs = len(listings)

	var salaried []*models.JobListing
	bandCounts := make(map[string]int)
	deptTotals := make(map[string]int)
	deptCounts := make(map[string]int)

	for _, l := range listings {
		summary.Departments[l.Department]++
		summary.Locations[l.Location]++
		summary.WorkArrangement[classifyArrangement(l.Location)]++
		summary.SeniorityLevels[ClassifySeniority(l.Title)]++

		if l.Salary == nil {
			continue
		}
		salaried = append(salaried, l)
		bandCounts[bandFor(l.Salary.Max)]++

		mid := salaryMidpoint(l.Salary)
		deptTotals[l.Department] += mid
		deptCounts[l.Department]++
	}

	summary.DisclosureRate = float64(len(salaried)) / float64(len(listings)) * 100

	if len(salaried) > 0 {
		var minTotal, maxTotal int
		for _, l := range salaried {
			minTotal += l.Salary.Min
			maxTotal += l.Salary.Max
		}
		summary.AvgSalary = &models.AvgSalary{
			Min: minTotal / len(salaried),
			Max: maxTotal / len(salaried),
		}
	}

	for _, band := range salaryBands {
		if n := bandCounts[band.label]; n > 0 {
			summary.SalaryDistribution = append(summary.SalaryDistribution,
				models.BandCount{Band: band.label, Count: n})
		}
	}

	for dept, total := range deptTotals {
		summary.AvgSalaryByDept[dept] = total / deptCounts[dept]
	}

	sort.Slice(salaried, func(i, j int) bool {
		return salaried[i].Salary.Max > salaried[j].Salary.Max
	})
	if len(salaried) > 10 {
		summary.TopPayingJobs = salaried[:10]
	} else {
		summary.TopPayingJobs = salaried
	}

	return summary
}

// ClassifySeniority buckets a job title by keyword groups.
func ClassifySeniority(title string) string {
	lower := strings.ToLower(title)
	for _, group := range seniorityGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.level
			}
		}
	}
	return "Mid"
}

func classifyArrangement(location string) string {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "remote"):
		return "Remote"
	case strings.Contains(lower, "hybrid"):
		return "Hybrid"
	default:
		return "Onsite"
	}
}

func bandFor(max int) string {
	for _, band := range salaryBands {
		if band.upper > 0 && max <= band.upper {
			return band.label
		}
	}
	return salaryBands[len(salaryBands)-1].label
}

// salaryMidpoint is (min+max)/2, falling back to whichever bound is present
// when the other is zero.
func salaryMidpoint(s *models.SalaryRange) int {
	switch {
	case s.Min == 0:
		return s.Max
	case s.Max == 0:
		return s.Min
	default:
		return (s.Min + s.Max) / 2
	}
}

// Print writes a human-readable report to stdout. Used by the CLI mode only.
func (s *InsightService) Print(r *models.AnalyticsSummary) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  JOB SCRAPE INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total listings     : \033[1m%d\033[0m\n", r.TotalJobs)
	fmt.Printf("  Salary disclosure  : \033[1m%.1f%%\033[0m\n", r.DisclosureRate)
	if r.AvgSalary != nil {
		fmt.Printf("  Average range      : \033[1;32m$%d - $%d\033[0m\n", r.AvgSalary.Min, r.AvgSalary.Max)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Salary Distribution\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.SalaryDistribution) == 0 {
		fmt.Printf("  No disclosed salaries\n")
	} else {
		for _, bc := range r.SalaryDistribution {
			bar := strings.Repeat("█", bc.Count)
			fmt.Printf("  %-12s %s (%d)\n", bc.Band, bar, bc.Count)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Paying Roles\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopPayingJobs) == 0 {
		fmt.Printf("  No salaried listings found\n")
	} else {
		for i, l := range r.TopPayingJobs {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m$%d\033[0m\n",
				i+1, truncate(l.Title, 38), l.Salary.Max)
		}
	}
	fmt.Println()

	printCountMap("  Departments", r.Departments)
	printCountMap("  Work Arrangement", r.WorkArrangement)
	printCountMap("  Seniority Levels", r.SeniorityLevels)

	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)
}

func printCountMap(heading string, counts map[string]int) {
	thin := strings.Repeat("─", 54)
	fmt.Printf("\033[1;33m%s\033[0m\n", heading)
	fmt.Printf("  %s\n", thin)

	type kv struct {
		key   string
		count int
	}
	var entries []kv
	for k, v := range counts {
		entries = append(entries, kv{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count == entries[j].count {
			return entries[i].key < entries[j].key
		}
		return entries[i].count > entries[j].count
	})
	for _, e := range entries {
		fmt.Printf("  %-30s %d\n", truncate(e.key, 28), e.count)
	}
	fmt.Println()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
