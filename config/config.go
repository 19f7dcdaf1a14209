package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	FetchDetails     bool
	MaxDetailFetches int
	MinTextLength    int

	NavTimeoutSec    int
	SettleWaitMs     int
	MaxConcurrency   int
	RateLimitMs      int
	MaxRetries       int

	ServerAddr    string
	CSVOutputPath string
	DataDir       string

	PostgresDSN string
	ChromeBin   string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		FetchDetails:     getEnvBool("FETCH_DETAILS", true),
		MaxDetailFetches: getEnvInt("MAX_DETAIL_FETCHES", 20),
		MinTextLength:    getEnvInt("MIN_TEXT_LENGTH", 10),

		NavTimeoutSec:  getEnvInt("NAV_TIMEOUT_SEC", 30),
		SettleWaitMs:   getEnvInt("SETTLE_WAIT_MS", 2000),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 500),
		MaxRetries:     getEnvInt("MAX_RETRIES", 2),

		ServerAddr:    getEnv("SERVER_ADDR", ":8100"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/jobs.csv"),
		DataDir:       getEnv("DATA_DIR", "./data"),

		PostgresDSN: getEnv("POSTGRES_DSN", ""),
		ChromeBin:   getEnv("CHROME_BIN", ""),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
