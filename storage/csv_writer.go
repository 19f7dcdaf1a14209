package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"talent-scraper/models"
)

// CSVWriter exports listings to a CSV file. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"provider", "title", "location", "department",
		"salary_min", "salary_max", "salary_raw", "url", "scraped_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends all listings to the CSV file.
func (c *CSVWriter) Write(listings []*models.JobListing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, l := range listings {
		var salaryMin, salaryMax, salaryRaw string
		if l.Salary != nil {
			salaryMin = strconv.Itoa(l.Salary.Min)
			salaryMax = strconv.Itoa(l.Salary.Max)
			salaryRaw = l.Salary.Raw
		}

		row := []string{
			string(l.Provider),
			l.Title,
			l.Location,
			l.Department,
			salaryMin,
			salaryMax,
			salaryRaw,
			l.URL,
			l.ScrapedAt.Format(time.RFC3339),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
