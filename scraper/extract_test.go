package scraper

import (
	"testing"

	"talent-scraper/models"
)

func firstElement(t *testing.T, html, selector string) *Element {
	t.Helper()
	doc := mustDocument(t, html, "https://example.com/careers")
	elements := doc.Select(selector)
	if len(elements) == 0 {
		t.Fatalf("selector %q matched nothing", selector)
	}
	return elements[0]
}

func TestExtractListingRemoteSeniorEngineer(t *testing.T) {
	html := `<div class="opening">
		<a href="/jobs/42">Senior Backend Engineer (Remote)</a>
	</div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Title != "Senior Backend Engineer" {
		t.Errorf("Title: got %q, want %q", listing.Title, "Senior Backend Engineer")
	}
	if listing.Location != "Remote" {
		t.Errorf("Location: got %q, want Remote", listing.Location)
	}
	if listing.Department != "Engineering" {
		t.Errorf("Department: got %q, want Engineering", listing.Department)
	}
	if listing.URL != "https://example.com/jobs/42" {
		t.Errorf("URL: got %q, want https://example.com/jobs/42", listing.URL)
	}
}

func TestExtractListingStructuredFields(t *testing.T) {
	html := `<div class="opening">
		<a href="https://boards.greenhouse.io/acme/jobs/7">Product Manager, Payments</a>
		<span>Product</span>
		<span>New York, NY</span>
		<p>Base salary $140,000 - $180,000 plus equity.</p>
	</div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Title != "Product Manager, Payments" {
		t.Errorf("Title: got %q", listing.Title)
	}
	if listing.Location != "New York, NY" {
		t.Errorf("Location: got %q, want New York, NY", listing.Location)
	}
	if listing.Department != "Product" {
		t.Errorf("Department: got %q, want Product", listing.Department)
	}
	if listing.URL != "https://boards.greenhouse.io/acme/jobs/7" {
		t.Errorf("URL: got %q; absolute hrefs must pass through", listing.URL)
	}
	if listing.Salary == nil || listing.Salary.Min != 140000 || listing.Salary.Max != 180000 {
		t.Errorf("Salary: got %+v, want {140000, 180000}", listing.Salary)
	}
}

func TestExtractListingDefaults(t *testing.T) {
	html := `<div class="opening"><h3>Chief of Staff</h3></div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Location != "Not specified" {
		t.Errorf("Location: got %q, want Not specified", listing.Location)
	}
	if listing.Department != "Not specified" {
		t.Errorf("Department: got %q, want Not specified", listing.Department)
	}
	if listing.URL != "" {
		t.Errorf("URL: got %q, want empty", listing.URL)
	}
	if listing.Salary != nil {
		t.Errorf("Salary: got %+v, want nil", listing.Salary)
	}
}

func TestExtractListingRemoteFallbackFromRawText(t *testing.T) {
	// The paragraph is too long for the location scan, so "Remote" must come
	// from the raw-text fallback.
	html := `<div class="opening">
		<h4>Technical Writer</h4>
		<p>This position is open to fully remote candidates across North American time zones, with optional quarterly meetups at a rotating office location.</p>
	</div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Location != "Remote" {
		t.Errorf("Location: got %q, want Remote fallback", listing.Location)
	}
}

func TestExtractListingStructuredTextLines(t *testing.T) {
	html := `<div class="opening">
		Platform Engineer
		Engineering
		San Francisco, CA
	</div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Title != "Platform Engineer" {
		t.Errorf("Title: got %q, want Platform Engineer", listing.Title)
	}
	if listing.Department != "Engineering" {
		t.Errorf("Department: got %q, want Engineering", listing.Department)
	}
	if listing.Location != "San Francisco, CA" {
		t.Errorf("Location: got %q, want San Francisco, CA", listing.Location)
	}
}

func TestExtractListingSuppressedWithoutTitle(t *testing.T) {
	html := `<div class="opening">   </div>`
	el := firstElement(t, html, ".opening")

	if listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse); listing != nil {
		t.Errorf("titleless element should be suppressed, got %+v", listing)
	}
}

func TestExtractTitleKeepsNonLocationParenthetical(t *testing.T) {
	html := `<div class="opening"><a href="/jobs/9">Engineer (L5)</a></div>`
	el := firstElement(t, html, ".opening")

	listing := extractListing(el, "https://example.com/careers", ProfileFor(models.ProviderGreenhouse), models.ProviderGreenhouse)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	if listing.Title != "Engineer (L5)" {
		t.Errorf("Title: got %q; level markers are not locations", listing.Title)
	}
}

func TestExtractURLUsesProviderBase(t *testing.T) {
	html := `<a class="posting" href="/acme/11111111-2222-3333-4444-555555555555">Staff Engineer, Infrastructure</a>`
	el := firstElement(t, html, ".posting")

	listing := extractListing(el, "https://jobs.ashbyhq.com/acme", ProfileFor(models.ProviderAshby), models.ProviderAshby)
	if listing == nil {
		t.Fatal("listing should not be suppressed")
	}
	want := "https://jobs.ashbyhq.com/acme/11111111-2222-3333-4444-555555555555"
	if listing.URL != want {
		t.Errorf("URL: got %q, want %q", listing.URL, want)
	}
}

func TestDeriveBaseURL(t *testing.T) {
	tests := []struct {
		pageURL string
		want    string
	}{
		{"https://example.com/jobs", "https://example.com"},
		{"https://example.com/careers/open-roles", "https://example.com"},
		{"https://example.com", "https://example.com"},
	}
	for _, tt := range tests {
		if got := deriveBaseURL(tt.pageURL); got != tt.want {
			t.Errorf("deriveBaseURL(%q) = %q; want %q", tt.pageURL, got, tt.want)
		}
	}
}
