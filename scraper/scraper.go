package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"talent-scraper/config"
	"talent-scraper/models"
	"talent-scraper/utils"
)

// ErrInvalidURL is the only fatal extraction error: callers get it before
// any render is attempted. Everything downstream degrades to defaults or an
// empty result instead of failing.
var ErrInvalidURL = errors.New("invalid input url")

// Options is the per-request configuration surface for Extract.
// A MaxDetailFetches of zero means no secondary fetches at all; the default
// budget comes from the application config via DefaultOptions.
type Options struct {
	FetchDetails      bool
	MaxDetailFetches  int
	MinTextLength     int
	SelectorOverrides map[models.Provider][]string
}

// DefaultOptions derives extraction options from the application config.
func DefaultOptions(cfg *config.Config) Options {
	return Options{
		FetchDetails:     cfg.FetchDetails,
		MaxDetailFetches: cfg.MaxDetailFetches,
		MinTextLength:    cfg.MinTextLength,
	}
}

// Scraper runs scrape sessions: classify the provider, render the page,
// cascade selectors, extract fields, then enrich missing salaries under a
// fetch budget.
type Scraper struct {
	cfg      *config.Config
	logger   *utils.Logger
	renderer Renderer
	retry    *utils.RetryConfig
}

// New creates a ready-to-use Scraper on top of the given renderer. A Scraper
// is safe for concurrent sessions; each session owns its own working state.
func New(cfg *config.Config, logger *utils.Logger, renderer Renderer) *Scraper {
	return &Scraper{
		cfg:      cfg,
		logger:   logger,
		renderer: renderer,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Extract scrapes a career page into canonical listings. A page that
// renders but yields no job elements is a valid empty result, not an
// error; the only error returned is ErrInvalidURL.
func (s *Scraper) Extract(ctx context.Context, rawURL string, opts Options) (*models.ScrapeResult, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}

	provider := ClassifyProvider(rawURL)
	profile := ProfileFor(provider)
	s.logger.Info("[scraper] Scraping %s (provider: %s)", rawURL, provider)

	selectors := profile.Selectors
	if override := opts.SelectorOverrides[provider]; len(override) > 0 {
		selectors = override
	}
	minTextLen := opts.MinTextLength
	if minTextLen <= 0 {
		minTextLen = 10
	}

	navTimeout := time.Duration(s.cfg.NavTimeoutSec) * time.Second
	var doc *Document
	err := s.retry.Do(ctx, "render-listing-page", func() error {
		var renderErr error
		doc, renderErr = s.renderer.Render(ctx, rawURL, navTimeout)
		return renderErr
	})
	if err != nil {
		// A page that never renders produces an empty session, not a
		// failed one.
		s.logger.Error("[scraper] Render failed for %s: %v", rawURL, err)
		return &models.ScrapeResult{Listings: []*models.JobListing{}, Provider: provider}, nil
	}

	cascade := runCascade(doc, selectors, profile.JobPathRe, minTextLen)
	switch {
	case cascade.selector != "":
		s.logger.Info("[scraper] Found %d elements using selector: %s", len(cascade.elements), cascade.selector)
	case len(cascade.elements) > 0:
		s.logger.Info("[scraper] Found %d elements via anchor-scan fallback", len(cascade.elements))
	default:
		s.logger.Warn("[scraper] No job elements found on %s", rawURL)
	}

	budget := opts.MaxDetailFetches
	if budget < 0 {
		budget = 0
	}
	session := &models.ScrapeSession{
		SourceURL:            rawURL,
		Provider:             provider,
		Listings:             make([]*models.JobListing, 0, len(cascade.elements)),
		FetchBudgetRemaining: budget,
	}

	seen := utils.NewURLSet()
	for _, el := range cascade.elements {
		listing := extractListing(el, doc.URL(), profile, provider)
		if listing == nil {
			continue
		}
		if listing.URL != "" && !seen.Add(listing.URL) {
			continue
		}
		session.Listings = append(session.Listings, listing)
	}

	if opts.FetchDetails && len(session.Listings) > 0 {
		s.enrich(ctx, session, navTimeout)
	}

	s.logger.Info("[scraper] Scraped %d listings from %s", len(session.Listings), rawURL)
	return &models.ScrapeResult{Listings: session.Listings, Provider: provider}, nil
}

// JobDetails is the result of scraping one posting's detail page.
type JobDetails struct {
	URL         string              `json:"url"`
	Salary      *models.SalaryRange `json:"salary,omitempty"`
	Description string              `json:"description,omitempty"`
}

// ScrapeJobDetails renders a single posting page and pulls out salary and
// description.
func (s *Scraper) ScrapeJobDetails(ctx context.Context, jobURL string) (*JobDetails, error) {
	if err := validateURL(jobURL); err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(ctx, jobURL, time.Duration(s.cfg.NavTimeoutSec)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("scrape details: %w", err)
	}

	return &JobDetails{
		URL:         jobURL,
		Salary:      findSalaryOnPage(doc),
		Description: extractDescription(doc),
	}, nil
}

// extractDescription finds the main posting body, preferring elements with
// description-like class names.
func extractDescription(doc *Document) string {
	selectors := []string{
		`[class*="posting-description"]`,
		`[class*="description"]`,
		`[class*="job-content"]`,
		"main",
		"article",
	}
	for _, selector := range selectors {
		for _, el := range doc.Select(selector) {
			text := normalizeText(el.Text())
			if len(text) > 30 {
				return truncateRunes(text, 2000)
			}
		}
	}
	return ""
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	return nil
}
