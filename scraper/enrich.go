package scraper

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"talent-scraper/models"
	"talent-scraper/services"
	"talent-scraper/utils"
)

// compensationKeywords mark a page region as likely to contain salary text.
var compensationKeywords = []string{"compensation", "salary", "pay range", "wage", "remuneration"}

// enrich visits detail pages for listings that have a URL but no salary,
// re-running the salary normalizer against the detail page. The budget is a
// shared atomic counter decremented once per attempted visit, successful or
// not, so the total number of secondary fetches never exceeds it no matter
// how many fetches run in parallel. Per-fetch failures are swallowed: the
// listing keeps whatever salary state it had.
//
// Each call owns its worker pool, so concurrent sessions never wait on each
// other's in-flight fetches.
func (s *Scraper) enrich(ctx context.Context, session *models.ScrapeSession, timeout time.Duration) {
	workers := s.cfg.MaxConcurrency
	if workers <= 0 {
		workers = 1
	}
	pool := utils.NewWorkerPool(workers, s.cfg.RateLimitMs)

	var remaining atomic.Int64
	remaining.Store(int64(session.FetchBudgetRemaining))

	for _, l := range session.Listings {
		if ctx.Err() != nil {
			s.logger.Warn("[enrich] Session cancelled, stopping detail fetches")
			break
		}
		if l.URL == "" || l.Salary != nil {
			continue
		}
		if remaining.Add(-1) < 0 {
			remaining.Add(1)
			s.logger.Info("[enrich] Detail fetch budget exhausted")
			break
		}

		listing := l
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}

			doc, err := s.renderer.Render(ctx, listing.URL, timeout)
			if err != nil {
				s.logger.Warn("[enrich] Detail page failed for %s: %v", listing.URL, err)
				return
			}

			if salary := findSalaryOnPage(doc); salary != nil {
				listing.Salary = salary
				s.logger.Debug("[enrich] Found salary for %q: $%d - $%d",
					listing.Title, salary.Min, salary.Max)
			}
		})
	}
	pool.Wait()

	if left := remaining.Load(); left > 0 {
		session.FetchBudgetRemaining = int(left)
	} else {
		session.FetchBudgetRemaining = 0
	}
}

// findSalaryOnPage runs the salary normalizer against candidate regions of
// a detail page in priority order: keyword-bearing blocks, text around
// compensation headings, definition lists, currency-bearing list items,
// and finally the whole page text.
func findSalaryOnPage(doc *Document) *models.SalaryRange {
	for _, el := range doc.Select("div,section,p,li") {
		text := el.Text()
		if !containsCompensationKeyword(text) {
			continue
		}
		if salary := services.ParseSalary(text); salary != nil {
			return salary
		}
	}

	for _, heading := range doc.Select("h2,h3,h4,strong") {
		if !containsCompensationKeyword(heading.Text()) {
			continue
		}
		if next := heading.Next(); next != nil {
			if salary := services.ParseSalary(next.Text()); salary != nil {
				return salary
			}
		}
		if parent := heading.Parent(); parent != nil {
			if salary := services.ParseSalary(parent.Text()); salary != nil {
				return salary
			}
		}
	}

	for _, dl := range doc.Select("dl") {
		text := dl.Text()
		if !strings.Contains(text, "$") && !containsCompensationKeyword(text) {
			continue
		}
		if salary := services.ParseSalary(text); salary != nil {
			return salary
		}
	}

	for _, li := range doc.Select("li") {
		if !strings.Contains(li.Text(), "$") {
			continue
		}
		if salary := services.ParseSalary(li.Text()); salary != nil {
			return salary
		}
	}

	return services.ParseSalary(doc.FullText())
}

func containsCompensationKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range compensationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
