package scraper

import (
	"regexp"
	"strings"
)

// cascadeResult is the output of the selector cascade: the elements judged
// to be job postings and the selector that produced them ("" when the
// anchor-scan fallback fired).
type cascadeResult struct {
	elements []*Element
	selector string
}

// runCascade tries each selector in order and stops at the first one whose
// filtered match set is non-empty. Elements are filtered by minimum text
// length and a boilerplate denylist so cookie banners and navigation don't
// masquerade as postings. When every selector comes up empty, a page-wide
// anchor scan against the provider's job-path pattern is the last resort.
// An empty result is valid output, not an error: the page may simply list
// no jobs.
func runCascade(doc *Document, selectors []string, jobPathRe *regexp.Regexp, minTextLen int) cascadeResult {
	for _, selector := range selectors {
		matches := doc.Select(selector)
		if len(matches) == 0 {
			continue
		}

		valid := filterElements(matches, minTextLen)
		if len(valid) > 0 {
			return cascadeResult{elements: valid, selector: selector}
		}
	}

	// Fallback: collect anchors whose href looks like a job posting.
	var anchors []*Element
	for _, a := range doc.Select("a[href]") {
		if !jobPathRe.MatchString(a.Attr("href")) {
			continue
		}
		if validElementText(a.Text(), minTextLen) {
			anchors = append(anchors, a)
		}
	}

	return cascadeResult{elements: anchors}
}

func filterElements(elements []*Element, minTextLen int) []*Element {
	var valid []*Element
	for _, el := range elements {
		if validElementText(el.Text(), minTextLen) {
			valid = append(valid, el)
		}
	}
	return valid
}

func validElementText(text string, minTextLen int) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= minTextLen {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, banned := range boilerplateDenylist {
		if strings.Contains(lower, banned) {
			return false
		}
	}
	return true
}
