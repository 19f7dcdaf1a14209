package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"talent-scraper/config"
	"talent-scraper/models"
	"talent-scraper/scraper"
	"talent-scraper/services"
	"talent-scraper/storage"
	"talent-scraper/utils"
)

// Server exposes the scraper over HTTP. Scraped companies are kept in an
// in-memory registry backed by JSON snapshots on disk; the optional
// Postgres writer mirrors listings when a DSN is configured.
type Server struct {
	cfg      *config.Config
	logger   *utils.Logger
	scraper  *scraper.Scraper
	insights *services.InsightService
	store    *storage.JSONStore
	postgres *storage.PostgresWriter

	mu        sync.RWMutex
	companies map[string]*storage.Snapshot
}

// NewServer wires the HTTP layer. postgres may be nil.
func NewServer(cfg *config.Config, logger *utils.Logger, sc *scraper.Scraper,
	store *storage.JSONStore, postgres *storage.PostgresWriter) *Server {
	return &Server{
		cfg:       cfg,
		logger:    logger,
		scraper:   sc,
		insights:  services.NewInsightService(logger),
		store:     store,
		postgres:  postgres,
		companies: make(map[string]*storage.Snapshot),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:3100"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(s.requestLogger())
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/scrape", s.handleScrape)
	v1.GET("/companies", s.handleCompanies)
	v1.GET("/analytics/:company", s.handleAnalytics)
	v1.GET("/export/:company", s.handleExport)
	v1.POST("/scrape-details", s.handleScrapeDetails)

	return router
}

type scrapeRequest struct {
	URL         string `json:"url" binding:"required"`
	CompanyName string `json:"company_name"`
}

type scrapeResponse struct {
	Success     bool                 `json:"success"`
	CompanyName string               `json:"company_name"`
	TotalJobs   int                  `json:"total_jobs"`
	Provider    models.Provider      `json:"provider"`
	Jobs        []*models.JobListing `json:"jobs"`
	Metadata    gin.H                `json:"metadata"`
}

func (s *Server) handleScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := s.scraper.Extract(c.Request.Context(), req.URL, scraper.DefaultOptions(s.cfg))
	if errors.Is(err, scraper.ErrInvalidURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL", "details": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Scrape failed", "details": err.Error()})
		return
	}

	company := req.CompanyName
	if company == "" {
		company = CompanyNameFromURL(req.URL)
	}

	analytics := s.insights.Generate(result.Listings)
	snap := &storage.Snapshot{
		URL:       req.URL,
		Jobs:      result.Listings,
		Analytics: analytics,
		ScrapedAt: time.Now(),
	}

	s.mu.Lock()
	s.companies[company] = snap
	s.mu.Unlock()

	if path, err := s.store.Save(company, snap); err != nil {
		s.logger.Warn("[api] Failed to save snapshot for %s: %v", company, err)
	} else {
		s.logger.Info("[api] Snapshot saved to %s", path)
	}

	if s.postgres != nil {
		if err := s.postgres.Write(result.Listings); err != nil {
			s.logger.Warn("[api] PostgreSQL write failed: %v", err)
		}
	}

	c.JSON(http.StatusOK, scrapeResponse{
		Success:     true,
		CompanyName: company,
		TotalJobs:   len(result.Listings),
		Provider:    result.Provider,
		Jobs:        result.Listings,
		Metadata: gin.H{
			"scraped_at": snap.ScrapedAt,
			"url":        req.URL,
			"analytics":  analytics,
		},
	})
}

func (s *Server) handleCompanies(c *gin.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	companies := make([]gin.H, 0, len(s.companies))
	for name, snap := range s.companies {
		companies = append(companies, gin.H{
			"name":       name,
			"url":        snap.URL,
			"total_jobs": len(snap.Jobs),
			"scraped_at": snap.ScrapedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (s *Server) handleAnalytics(c *gin.Context) {
	company := c.Param("company")

	snap, ok := s.lookupCompany(company)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Company %s not found", company)})
		return
	}

	analytics := snap.Analytics
	if analytics == nil {
		analytics = s.insights.Generate(snap.Jobs)
	}
	c.JSON(http.StatusOK, analytics)
}

func (s *Server) handleExport(c *gin.Context) {
	company := c.Param("company")
	format := c.DefaultQuery("format", "json")

	snap, ok := s.lookupCompany(company)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Company %s not found", company)})
		return
	}

	switch format {
	case "json":
		filename := company + "_export.json"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.JSON(http.StatusOK, snap)

	case "csv":
		path := filepath.Join(os.TempDir(), company+"_export.csv")
		writer, err := storage.NewCSVWriter(path)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed", "details": err.Error()})
			return
		}
		if err := writer.Write(snap.Jobs); err != nil {
			_ = writer.Close()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed", "details": err.Error()})
			return
		}
		_ = writer.Close()
		c.FileAttachment(path, company+"_export.csv")

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Unsupported format: %s", format)})
	}
}

type detailsRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleScrapeDetails(c *gin.Context) {
	var req detailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	details, err := s.scraper.ScrapeJobDetails(c.Request.Context(), req.URL)
	if errors.Is(err, scraper.ErrInvalidURL) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL", "details": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Detail scrape failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

// lookupCompany checks the in-memory registry first, then falls back to the
// newest JSON snapshot on disk.
func (s *Server) lookupCompany(company string) (*storage.Snapshot, bool) {
	s.mu.RLock()
	snap, ok := s.companies[company]
	s.mu.RUnlock()
	if ok {
		return snap, true
	}

	snap, err := s.store.LoadLatest(company)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	s.companies[company] = snap
	s.mu.Unlock()
	return snap, true
}

// CompanyNameFromURL derives a registry key from a career-page URL: the
// first path segment for hosted boards (greenhouse, ashby), otherwise the
// host itself.
func CompanyNameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown"
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	if strings.Contains(host, "greenhouse.io") || strings.Contains(host, "ashbyhq.com") {
		for _, segment := range strings.Split(parsed.Path, "/") {
			if segment != "" {
				return segment
			}
		}
	}
	return host
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("[api] %s %s %d (%v)",
			method, path, c.Writer.Status(), time.Since(start))
	}
}
