package scraper

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"talent-scraper/models"
	"talent-scraper/services"
)

var parentheticalRe = regexp.MustCompile(`\(([^)]+)\)`)

// extractListing turns one cascade element into a canonical JobListing.
// Every field walks a priority chain of increasingly weak evidence and
// terminates in a safe default; extraction never fails outright for a
// plausible job element. A nil return means the element does not represent
// a job (no title at all) and is silently suppressed.
func extractListing(el *Element, pageURL string, profile *Profile, provider models.Provider) *models.JobListing {
	fullText := el.Text()
	if strings.TrimSpace(fullText) == "" {
		return nil
	}

	title := extractTitle(el, fullText)
	if title == "" {
		return nil
	}

	title, embeddedLocation := splitEmbeddedLocation(title)

	listing := &models.JobListing{
		Title:     title,
		URL:       extractURL(el, pageURL, profile),
		Provider:  provider,
		ScrapedAt: time.Now(),
		RawText:   fullText,
	}

	location := embeddedLocation
	if location == "" {
		location = scanLocation(el)
	}
	department := scanDepartment(el, title, location)

	// Bare-text rows carry no child structure for the node scans to walk;
	// their line layout is the only remaining signal.
	if location == "" && department == "" {
		department, location = scanStructuredLines(fullText)
	}

	if location == "" {
		if strings.Contains(strings.ToLower(fullText), "remote") {
			location = "Remote"
		} else {
			location = notSpecified
		}
	}
	listing.Location = location

	if department == "" {
		department = inferDepartmentFromTitle(title)
	}
	if department == "" {
		department = notSpecified
	}
	listing.Department = department

	listing.Salary = services.ParseSalary(fullText)

	return listing
}

// extractTitle prefers the first anchor's text, then heading-ish tags, then
// the first non-empty line of the element's text.
func extractTitle(el *Element, fullText string) string {
	if anchors := el.Find("a"); len(anchors) > 0 {
		if t := normalizeText(anchors[0].Text()); t != "" {
			return t
		}
	}

	for _, tag := range []string{"h3", "h4", "h2", "strong"} {
		if matches := el.Find(tag); len(matches) > 0 {
			if t := normalizeText(matches[0].Text()); t != "" {
				return t
			}
		}
	}

	// Anchors from the cascade fallback have no child structure; their own
	// text is the title.
	for _, line := range strings.Split(fullText, "\n") {
		if t := normalizeText(line); t != "" {
			return t
		}
	}

	return ""
}

// splitEmbeddedLocation handles the common "Title (Location)" pattern: if
// the last parenthetical looks like a location, it is pulled out and
// stripped from the title.
func splitEmbeddedLocation(title string) (string, string) {
	matches := parentheticalRe.FindAllStringSubmatch(title, -1)
	if len(matches) == 0 {
		return title, ""
	}

	candidate := strings.TrimSpace(matches[len(matches)-1][1])
	if !looksLikeLocation(candidate) {
		return title, ""
	}

	stripped := strings.Replace(title, "("+candidate+")", "", 1)
	return normalizeText(stripped), candidate
}

func looksLikeLocation(s string) bool {
	if hasAnyKeyword(s, locationKeywords) || hasAnyKeyword(s, cityKeywords) {
		return true
	}
	// "City, Region"
	return strings.Contains(s, ",")
}

// extractURL takes the first anchor href and resolves it to an absolute URL
// using the provider's base rule.
func extractURL(el *Element, pageURL string, profile *Profile) string {
	href := el.Attr("href")
	if href == "" {
		for _, a := range el.Find("a") {
			if h := a.Attr("href"); h != "" {
				href = h
				break
			}
		}
	}
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}

	base := profile.BaseURL
	if base == "" {
		base = deriveBaseURL(pageURL)
	}
	base = strings.TrimSuffix(base, "/")
	if strings.HasPrefix(href, "/") {
		return base + href
	}
	return base + "/" + href
}

// deriveBaseURL strips the trailing /jobs or /careers segment from the page
// URL, mirroring how job boards nest posting paths under the listing page.
func deriveBaseURL(pageURL string) string {
	base := pageURL
	if i := strings.Index(base, "/jobs"); i >= 0 {
		base = base[:i]
	}
	if i := strings.Index(base, "/careers"); i >= 0 {
		base = base[:i]
	}
	return base
}

// scanLocation walks short text nodes looking for, in order: a work
// arrangement keyword, a known city, a region/state abbreviation.
func scanLocation(el *Element) string {
	for _, node := range el.Find("span,div,p") {
		text := normalizeText(node.Text())
		if text == "" || len(text) >= 100 {
			continue
		}
		lower := strings.ToLower(text)

		for _, kw := range arrangementKeywords {
			if strings.Contains(lower, kw) {
				return text
			}
		}
		for _, city := range cityKeywords {
			if strings.Contains(lower, city) {
				return text
			}
		}
		if regionAbbrevRe.MatchString(text) {
			return text
		}
	}
	return ""
}

// scanDepartment looks for a short text node matching the department
// lexicon, skipping nodes that are the title or the location.
func scanDepartment(el *Element, title, location string) string {
	for _, node := range el.Find("span,div,p") {
		text := normalizeText(node.Text())
		if text == "" || len(text) >= 50 || text == title || text == location {
			continue
		}
		lower := strings.ToLower(text)
		for _, kw := range departmentKeywords {
			if strings.Contains(lower, kw) {
				return text
			}
		}
	}
	return ""
}

// scanStructuredLines handles rows laid out as plain text lines, a layout
// some boards use: title on the first line, then department, then location.
// Only consulted when the node scans found neither field. Candidates obey
// the same length limits as the node scans.
func scanStructuredLines(fullText string) (department, location string) {
	var lines []string
	for _, line := range strings.Split(fullText, "\n") {
		if t := normalizeText(line); t != "" {
			lines = append(lines, t)
		}
	}
	if len(lines) < 3 {
		return "", ""
	}

	if len(lines[1]) < 50 && hasAnyKeyword(lines[1], departmentKeywords) {
		department = lines[1]
	}

	candidate := lines[1]
	if department != "" {
		candidate = lines[2]
	}
	if len(candidate) < 100 &&
		(hasAnyKeyword(candidate, arrangementKeywords) || hasAnyKeyword(candidate, cityKeywords)) {
		location = candidate
	}
	return department, location
}

func hasAnyKeyword(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func inferDepartmentFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range titleDepartmentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.department
			}
		}
	}
	return ""
}

// normalizeText trims and collapses internal whitespace.
func normalizeText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}
