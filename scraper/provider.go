package scraper

import (
	"regexp"
	"strings"

	"talent-scraper/models"
)

// Profile is the per-vendor configuration consumed by the generic extraction
// pipeline: which selectors to cascade through, how to recognize job links,
// and how to resolve relative hrefs. Adding a vendor means adding a profile,
// not a code path.
type Profile struct {
	Provider models.Provider

	// Selectors are tried in order by the cascade; hand-tuned to each
	// vendor's markup conventions.
	Selectors []string

	// JobPathRe matches hrefs that point at individual postings. Used by
	// the anchor-scan fallback and for picking the title link.
	JobPathRe *regexp.Regexp

	// BaseURL resolves relative hrefs when the vendor hosts postings on a
	// known domain. Empty means derive the base from the page URL by
	// stripping its /jobs or /careers segment.
	BaseURL string
}

var greenhouseProfile = &Profile{
	Provider: models.ProviderGreenhouse,
	Selectors: []string{
		".opening",
		`[data-mapped="true"]`,
		"section.level-0",
		".job-post",
		".careers-listing",
		`div[class*="opening"]`,
		`div[class*="job"]`,
		`li[class*="opening"]`,
		`li[class*="job"]`,
		`tr[class*="job"]`,
		".position",
		`[role="listitem"]`,
	},
	JobPathRe: regexp.MustCompile(`/jobs/|/careers/`),
}

var profiles = map[models.Provider]*Profile{
	models.ProviderGreenhouse: greenhouseProfile,

	models.ProviderAshby: {
		Provider: models.ProviderAshby,
		Selectors: []string{
			`div[class*="jobPosting"]`,
			`a[class*="jobPosting"]`,
			`div[class*="_container"] a[href*="/"]`,
			`li[class*="job"]`,
		},
		JobPathRe: regexp.MustCompile(`ashbyhq\.com/|^/[^/]+/[0-9a-f-]{36}`),
		BaseURL:   "https://jobs.ashbyhq.com",
	},

	models.ProviderStripe: {
		Provider: models.ProviderStripe,
		Selectors: []string{
			"tr.TableRow",
			`a[href*="/jobs/listing"]`,
			`div[class*="JobsListings"]`,
			`li[class*="job"]`,
		},
		JobPathRe: regexp.MustCompile(`/jobs/listing`),
		BaseURL:   "https://stripe.com",
	},

	models.ProviderDatabricks: {
		Provider: models.ProviderDatabricks,
		Selectors: []string{
			`div[class*="job-posting"]`,
			`div[class*="careers-listing"]`,
			`a[href*="/company/careers/"]`,
			`li[class*="job"]`,
		},
		JobPathRe: regexp.MustCompile(`/company/careers/`),
		BaseURL:   "https://www.databricks.com",
	},

	models.ProviderCanva: {
		Provider: models.ProviderCanva,
		Selectors: []string{
			`a[href*="/careers/jobs/"]`,
			`div[class*="job-card"]`,
			`li[class*="job"]`,
		},
		JobPathRe: regexp.MustCompile(`/careers/jobs/`),
		BaseURL:   "https://www.canva.com",
	},

	models.ProviderRippling: {
		Provider: models.ProviderRippling,
		Selectors: []string{
			`div[class*="job-card"]`,
			`a[href*="/rippling-jobs/"]`,
			`div[class*="opening"]`,
			`li[class*="job"]`,
		},
		JobPathRe: regexp.MustCompile(`/rippling-jobs/|/jobs/`),
		BaseURL:   "https://www.rippling.com",
	},
}

// providerSignatures classify a URL by ordered substring match; first hit
// wins, no hit means unknown.
var providerSignatures = []struct {
	fragment string
	provider models.Provider
}{
	{"greenhouse.io", models.ProviderGreenhouse},
	{"ashbyhq.com", models.ProviderAshby},
	{"stripe.com", models.ProviderStripe},
	{"databricks.com", models.ProviderDatabricks},
	{"canva.com", models.ProviderCanva},
	{"rippling.com", models.ProviderRippling},
}

// ClassifyProvider maps a career-page URL to its job-board vendor. Pure and
// total: unrecognized URLs classify as unknown.
func ClassifyProvider(url string) models.Provider {
	lower := strings.ToLower(url)
	for _, sig := range providerSignatures {
		if strings.Contains(lower, sig.fragment) {
			return sig.provider
		}
	}
	return models.ProviderUnknown
}

// ProfileFor returns the extraction profile for a provider. Unknown falls
// back to the greenhouse profile, the most general template, while keeping
// its own provider tag.
func ProfileFor(p models.Provider) *Profile {
	if profile, ok := profiles[p]; ok {
		return profile
	}
	return greenhouseProfile
}
