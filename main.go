package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"talent-scraper/api"
	"talent-scraper/config"
	"talent-scraper/scraper"
	"talent-scraper/services"
	"talent-scraper/storage"
	"talent-scraper/utils"
)

func main() {
	var (
		targetURL = flag.String("url", "", "career page URL to scrape")
		serve     = flag.Bool("serve", false, "run the HTTP API server instead of a one-shot scrape")
	)
	flag.Parse()

	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Talent Scraper starting ===")
	logger.Info("Config: detail fetches: %d | min text: %d | concurrency: %d | rate: %dms",
		cfg.MaxDetailFetches, cfg.MinTextLength, cfg.MaxConcurrency, cfg.RateLimitMs)

	renderer := scraper.NewChromeRenderer(cfg, logger)
	defer renderer.Close()

	sc := scraper.New(cfg, logger, renderer)

	store, err := storage.NewJSONStore(cfg.DataDir)
	if err != nil {
		logger.Error("Failed to create JSON store: %v", err)
		os.Exit(1)
	}

	var pgWriter *storage.PostgresWriter
	if cfg.PostgresDSN != "" {
		pgWriter, err = storage.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			os.Exit(1)
		}
		defer pgWriter.Close()
	}

	if *serve {
		server := api.NewServer(cfg, logger, sc, store, pgWriter)
		logger.Info("API server listening on %s", cfg.ServerAddr)
		if err := server.Router().Run(cfg.ServerAddr); err != nil {
			logger.Error("Server stopped: %v", err)
			os.Exit(1)
		}
		return
	}

	if *targetURL == "" {
		fmt.Fprintln(os.Stderr, "usage: talent-scraper -url <career page URL> | talent-scraper -serve")
		os.Exit(2)
	}

	result, err := sc.Extract(context.Background(), *targetURL, scraper.DefaultOptions(cfg))
	if err != nil {
		logger.Error("Scrape failed: %v", err)
		os.Exit(1)
	}

	logger.Info("Scraped %d listings (provider: %s)", len(result.Listings), result.Provider)

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	if err := csvWriter.Write(result.Listings); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Listings saved to %s", cfg.CSVOutputPath)
	}
	_ = csvWriter.Close()

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(result.Listings)

	snap := &storage.Snapshot{
		URL:       *targetURL,
		Jobs:      result.Listings,
		Analytics: report,
		ScrapedAt: time.Now(),
	}
	company := api.CompanyNameFromURL(*targetURL)
	if path, err := store.Save(company, snap); err != nil {
		logger.Warn("Snapshot save failed: %v", err)
	} else {
		logger.Info("Snapshot saved to %s", path)
	}

	if pgWriter != nil {
		if err := pgWriter.Write(result.Listings); err != nil {
			logger.Error("PostgreSQL write failed: %v", err)
		} else {
			logger.Info("Listings stored in PostgreSQL (table: job_listings)")
		}
	}

	insightSvc.Print(report)

	fmt.Printf("  Done. CSV: %s | Snapshots: %s\n\n", cfg.CSVOutputPath, cfg.DataDir)
}
