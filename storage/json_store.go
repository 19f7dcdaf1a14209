package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"talent-scraper/models"
)

// Snapshot is one scraped company's full state: the listings, the analytics
// computed at scrape time (a best-effort copy, consumers recompute when
// missing), and when it was taken.
type Snapshot struct {
	URL       string                   `json:"url"`
	Jobs      []*models.JobListing     `json:"jobs"`
	Analytics *models.AnalyticsSummary `json:"analytics,omitempty"`
	ScrapedAt time.Time                `json:"scraped_at"`
}

// JSONStore persists per-company snapshots as timestamped JSON files.
type JSONStore struct {
	dir string
}

// NewJSONStore creates the data directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("json store: create dir %q: %w", dir, err)
	}
	return &JSONStore{dir: dir}, nil
}

// Save writes a snapshot to <dir>/<company>_<timestamp>.json and returns
// the file path.
func (s *JSONStore) Save(company string, snap *Snapshot) (string, error) {
	name := fmt.Sprintf("%s_%s.json", sanitizeName(company), snap.ScrapedAt.Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("json store: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("json store: write %q: %w", path, err)
	}
	return path, nil
}

// LoadLatest returns the newest snapshot saved for a company, or
// os.ErrNotExist when none exists.
func (s *JSONStore) LoadLatest(company string) (*Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("json store: read dir: %w", err)
	}

	prefix := sanitizeName(company) + "_"
	var candidates []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".json") {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return nil, os.ErrNotExist
	}
	// Timestamped names sort chronologically.
	sort.Strings(candidates)

	data, err := os.ReadFile(filepath.Join(s.dir, candidates[len(candidates)-1]))
	if err != nil {
		return nil, fmt.Errorf("json store: read snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("json store: unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// sanitizeName keeps company names filesystem-safe.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
