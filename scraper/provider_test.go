package scraper

import (
	"testing"

	"talent-scraper/models"
)

func TestClassifyProvider(t *testing.T) {
	tests := []struct {
		url  string
		want models.Provider
	}{
		{"https://job-boards.greenhouse.io/anthropic", models.ProviderGreenhouse},
		{"https://jobs.ashbyhq.com/openai", models.ProviderAshby},
		{"https://stripe.com/jobs/search", models.ProviderStripe},
		{"https://www.databricks.com/company/careers", models.ProviderDatabricks},
		{"https://www.canva.com/careers/jobs/", models.ProviderCanva},
		{"https://www.rippling.com/careers", models.ProviderRippling},
		{"https://example.com/careers", models.ProviderUnknown},
		{"HTTPS://JOBS.ASHBYHQ.COM/ACME", models.ProviderAshby},
	}

	for _, tt := range tests {
		if got := ClassifyProvider(tt.url); got != tt.want {
			t.Errorf("ClassifyProvider(%q) = %q; want %q", tt.url, got, tt.want)
		}
	}
}

func TestProfileForUnknownFallsBackToGreenhouse(t *testing.T) {
	profile := ProfileFor(models.ProviderUnknown)
	if profile != greenhouseProfile {
		t.Error("unknown provider should use the greenhouse profile")
	}
	// The fallback shares selectors, not identity: the provider tag on
	// extracted listings still comes from classification.
	if profile.Selectors[0] != ".opening" {
		t.Errorf("greenhouse primary selector: got %q, want .opening", profile.Selectors[0])
	}
}

func TestEveryProviderHasAProfile(t *testing.T) {
	providers := []models.Provider{
		models.ProviderGreenhouse, models.ProviderAshby, models.ProviderStripe,
		models.ProviderDatabricks, models.ProviderCanva, models.ProviderRippling,
	}
	for _, p := range providers {
		profile := ProfileFor(p)
		if profile.Provider != p {
			t.Errorf("ProfileFor(%q).Provider = %q", p, profile.Provider)
		}
		if len(profile.Selectors) == 0 {
			t.Errorf("provider %q has no selectors", p)
		}
		if profile.JobPathRe == nil {
			t.Errorf("provider %q has no job path pattern", p)
		}
	}
}
