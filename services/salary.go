package services

import (
	"regexp"
	"strconv"
	"strings"

	"talent-scraper/models"
)

// Salary text shows up in a handful of recurring idioms. Each pattern below
// is tried in order and the first match wins; anything that matches nothing
// is treated as "no salary disclosed", never as an error.
var (
	// "$120k - $150k"
	dollarKRangeRe = regexp.MustCompile(`\$(\d{1,3})[kK]\s*[-–—]\s*\$(\d{1,3})[kK]`)
	// "$120,000 - $150,000"; an adjacent trailing hourly marker is captured
	// into the match so the raw substring carries the unit context with it
	dollarRangeRe = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*)\s*[-–—]\s*\$(\d{1,3}(?:,\d{3})*)((?:\s*(?:per hour|/hour|/hr|hourly))?)`)
	// "$95,000 to $110,000"
	dollarToRangeRe = regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)\s*to\s*\$(\d{1,3}(?:,\d{3})*)`)
	// "$130,000 per year" (single value)
	dollarSingleAnnualRe = regexp.MustCompile(`(?i)\$(\d{1,3}(?:,\d{3})*)\s*(?:per year|per yr|annually|/year|/yr)`)
	// "120,000 - 150,000 USD" / "... per year" (no dollar sign)
	bareRangeAnnualRe = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*[-–—]\s*(\d{1,3}(?:,\d{3})*)\s*(?:USD|per year|annually)`)
	// "120-150k"
	bareKRangeRe = regexp.MustCompile(`(\d{1,3})\s*[-–—]\s*(\d{1,3})[kK]`)
	// "Compensation: ... 140k" (single bare amount near a compensation keyword)
	compKeywordRe = regexp.MustCompile(`(?i)(?:compensation|salary|pay)[:\s]+.*?(\d{2,3})[kK]`)

	hourlyRe = regexp.MustCompile(`(?i)per hour|/hour|/hr|hourly`)
)

// ParseSalary extracts a salary range from free text. It is a best-effort
// classifier: ambiguous or unrecognized text returns nil rather than a
// guessed value. The returned range always satisfies Min <= Max.
func ParseSalary(text string) *models.SalaryRange {
	if text == "" {
		return nil
	}

	if m := dollarKRangeRe.FindStringSubmatch(text); m != nil {
		return newRange(atoiStripped(m[1])*1000, atoiStripped(m[2])*1000, m[0])
	}

	if loc := dollarRangeRe.FindStringSubmatchIndex(text); loc != nil {
		min := atoiStripped(text[loc[2]:loc[3]])
		max := atoiStripped(text[loc[4]:loc[5]])
		raw := text[loc[0]:loc[1]]
		// Values below 1000 are almost always missing a "k" suffix, unless
		// the posting is quoting an hourly wage. When the hourly marker sits
		// outside the matched range, raw is widened to include it so the raw
		// substring carries the same unit context as the full text.
		if min < 1000 && max < 1000 {
			switch h := hourlyRe.FindStringIndex(text); {
			case h == nil:
				min *= 1000
				max *= 1000
			case h[0] < loc[0]:
				raw = text[h[0]:loc[1]]
			case h[0] >= loc[1]:
				raw = text[loc[0]:h[1]]
			}
		}
		return newRange(min, max, raw)
	}

	if m := dollarToRangeRe.FindStringSubmatch(text); m != nil {
		return newRange(atoiStripped(m[1]), atoiStripped(m[2]), m[0])
	}

	if m := dollarSingleAnnualRe.FindStringSubmatch(text); m != nil {
		return normalizeSingle(atoiStripped(m[1]), m[0])
	}

	if m := bareRangeAnnualRe.FindStringSubmatch(text); m != nil {
		return newRange(atoiStripped(m[1]), atoiStripped(m[2]), m[0])
	}

	if m := bareKRangeRe.FindStringSubmatch(text); m != nil {
		return newRange(atoiStripped(m[1])*1000, atoiStripped(m[2])*1000, m[0])
	}

	if m := compKeywordRe.FindStringSubmatch(text); m != nil {
		amount := atoiStripped(m[1]) * 1000
		return newRange(amount, amount, m[0])
	}

	return nil
}

// normalizeSingle turns a single-point disclosure into a ±10% range. This is
// a deliberate approximation: postings that quote one number rarely pay
// exactly that number, and a synthetic band keeps the record comparable with
// true ranges. The spread is heuristic, not a statistical claim.
func normalizeSingle(value int, raw string) *models.SalaryRange {
	return newRange(value*9/10, value*11/10, raw)
}

func newRange(min, max int, raw string) *models.SalaryRange {
	if min > max {
		min, max = max, min
	}
	return &models.SalaryRange{Min: min, Max: max, Raw: strings.TrimSpace(raw)}
}

func atoiStripped(s string) int {
	n, _ := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	return n
}
