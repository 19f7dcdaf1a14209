package models

import "time"

// Provider identifies the job-board vendor/template a career page is built on.
type Provider string

const (
	ProviderGreenhouse Provider = "greenhouse"
	ProviderAshby      Provider = "ashby"
	ProviderStripe     Provider = "stripe"
	ProviderDatabricks Provider = "databricks"
	ProviderCanva      Provider = "canva"
	ProviderRippling   Provider = "rippling"
	ProviderUnknown    Provider = "unknown"
)

// SalaryRange is a parsed annual compensation range. Raw preserves the
// matched source substring for auditing.
type SalaryRange struct {
	Min int    `json:"min"`
	Max int    `json:"max"`
	Raw string `json:"raw"`
}

// JobListing is one scraped posting, normalized into the canonical schema.
// Title is never empty; Location and Department are always defaulted
// ("Not specified" / "Remote") rather than left blank.
type JobListing struct {
	Title      string       `json:"title"`
	URL        string       `json:"url,omitempty"`
	Location   string       `json:"location"`
	Department string       `json:"department"`
	Salary     *SalaryRange `json:"salary,omitempty"`
	Provider   Provider     `json:"provider"`
	ScrapedAt  time.Time    `json:"scraped_at"`
	RawText    string       `json:"raw_text,omitempty"`
}

// ScrapeSession is the per-request working state. It lives only for the
// duration of one scrape; the enrichment pass decrements the budget and
// patches salaries in place.
type ScrapeSession struct {
	SourceURL            string
	Provider             Provider
	Listings             []*JobListing
	FetchBudgetRemaining int
}

// ScrapeResult is what the scraper hands to callers: the final listing
// collection plus the provider that was detected for the page.
type ScrapeResult struct {
	Listings []*JobListing `json:"listings"`
	Provider Provider      `json:"provider"`
}

// AvgSalary holds the floored means of the disclosed minimums and maximums.
type AvgSalary struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// BandCount is one salary distribution bucket. Bands are emitted in
// ascending order with zero-count bands omitted.
type BandCount struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// AnalyticsSummary is a derived projection over a listing collection.
// It is recomputed on demand and never mutated in place.
type AnalyticsSummary struct {
	TotalJobs          int            `json:"total_jobs"`
	Departments        map[string]int `json:"departments"`
	Locations          map[string]int `json:"locations"`
	DisclosureRate     float64        `json:"disclosure_rate"`
	AvgSalary          *AvgSalary     `json:"avg_salary,omitempty"`
	SalaryDistribution []BandCount    `json:"salary_distribution"`
	AvgSalaryByDept    map[string]int `json:"avg_salary_by_dept"`
	TopPayingJobs      []*JobListing  `json:"top_paying_jobs"`
	WorkArrangement    map[string]int `json:"work_arrangement"`
	SeniorityLevels    map[string]int `json:"seniority_levels"`
}
