package scraper

import "regexp"

// Shared keyword lexicons used by the field extractor. They are deliberately
// plain data so individual lists can be tuned or tested without touching the
// extraction control flow.

// locationKeywords flag a parenthetical or short text node as a location
// (countries plus work-arrangement words that job boards put in the
// location slot).
var locationKeywords = []string{
	"remote", "hybrid", "usa", "uk", "india", "france", "germany", "canada",
	"australia", "singapore", "japan", "brazil", "spain", "italy",
	"netherlands", "united kingdom", "united states", "bengaluru",
	"são paulo", "sao paulo",
}

// cityKeywords are city names commonly seen on the boards we target.
var cityKeywords = []string{
	"new york", "san francisco", "london", "paris", "tokyo", "berlin",
	"sydney", "toronto", "amsterdam", "madrid", "rome", "beijing",
	"bangalore", "mumbai", "seattle", "austin", "boston", "chicago",
	"denver", "atlanta", "los angeles", "washington", "dublin",
	"hong kong", "bengaluru", "são paulo", "sao paulo", "singapore",
}

// arrangementKeywords identify work-arrangement text nodes.
var arrangementKeywords = []string{"remote", "hybrid", "on-site", "onsite"}

// regionAbbrevRe matches country/state abbreviations that job boards use as
// bare location strings.
var regionAbbrevRe = regexp.MustCompile(`\b(USA?|UK|CA|NY|SF|LA|TX|WA|IL|MA|CO|GA|DC)\b`)

// departmentKeywords flag a short text node as a department label.
var departmentKeywords = []string{
	"engineering", "product", "design", "marketing", "sales", "business",
	"operations", "finance", "legal", "people", "hr", "human resources",
	"data", "research", "support", "customer", "security",
	"infrastructure", "analytics", "growth", "platform", "backend",
	"frontend", "fullstack", "mobile", "devops", "sre", "qa", "quality",
}

// titleDepartmentRules infer a canonical department from title keywords when
// the markup carries no department signal. Checked in order, first hit wins.
var titleDepartmentRules = []struct {
	keywords   []string
	department string
}{
	{[]string{"engineer", "developer"}, "Engineering"},
	{[]string{"product"}, "Product"},
	{[]string{"design"}, "Design"},
	{[]string{"sales", "account"}, "Sales"},
	{[]string{"marketing", "growth"}, "Marketing"},
	{[]string{"data", "analyst"}, "Data & Analytics"},
	{[]string{"support", "success"}, "Customer Support"},
}

// boilerplateDenylist marks element text as navigation/consent chrome rather
// than a job posting.
var boilerplateDenylist = []string{"cookie", "privacy"}

const notSpecified = "Not specified"
