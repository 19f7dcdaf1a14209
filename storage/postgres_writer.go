package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"talent-scraper/models"
)

// PostgresWriter persists canonical listings to PostgreSQL. It is optional:
// the scraper owns no database, this is purely an export target.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS job_listings (
			id          SERIAL PRIMARY KEY,
			provider    VARCHAR(50) NOT NULL,
			title       TEXT        NOT NULL,
			location    TEXT        NOT NULL DEFAULT 'Not specified',
			department  TEXT        NOT NULL DEFAULT 'Not specified',
			salary_min  INTEGER,
			salary_max  INTEGER,
			salary_raw  TEXT,
			url         TEXT        UNIQUE,
			raw_text    TEXT        NOT NULL DEFAULT '',
			scraped_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_job_listings_provider   ON job_listings(provider);
		CREATE INDEX IF NOT EXISTS idx_job_listings_department ON job_listings(department);
		CREATE INDEX IF NOT EXISTS idx_job_listings_salary_max ON job_listings(salary_max);
	`)
	return err
}

// Write batch-inserts listings, skipping URLs already stored.
func (pw *PostgresWriter) Write(listings []*models.JobListing) error {
	if len(listings) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(listings); i += batchSize {
		end := i + batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.JobListing) error {
	const cols = 9
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))

		var salaryMin, salaryMax, salaryRaw interface{}
		if l.Salary != nil {
			salaryMin, salaryMax, salaryRaw = l.Salary.Min, l.Salary.Max, l.Salary.Raw
		}
		var url interface{}
		if l.URL != "" {
			url = l.URL
		}

		valueArgs = append(valueArgs,
			string(l.Provider), l.Title, l.Location, l.Department,
			salaryMin, salaryMax, salaryRaw, url, l.RawText)
	}

	query := fmt.Sprintf(`
		INSERT INTO job_listings (provider, title, location, department, salary_min, salary_max, salary_raw, url, raw_text)
		VALUES %s
		ON CONFLICT (url) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored listings.
func (pw *PostgresWriter) FetchAll() ([]*models.JobListing, error) {
	rows, err := pw.db.Query(`
		SELECT provider, title, location, department, salary_min, salary_max, salary_raw, url, raw_text, scraped_at
		FROM job_listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var listings []*models.JobListing
	for rows.Next() {
		l := &models.JobListing{}
		var provider string
		var salaryMin, salaryMax sql.NullInt64
		var salaryRaw, url sql.NullString
		if err := rows.Scan(
			&provider, &l.Title, &l.Location, &l.Department,
			&salaryMin, &salaryMax, &salaryRaw, &url, &l.RawText, &l.ScrapedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		l.Provider = models.Provider(provider)
		l.URL = url.String
		if salaryMin.Valid && salaryMax.Valid {
			l.Salary = &models.SalaryRange{
				Min: int(salaryMin.Int64),
				Max: int(salaryMax.Int64),
				Raw: salaryRaw.String,
			}
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
