package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"shopify-insights/config"
	"shopify-insights/extractor"
	"shopify-insights/gemini"
	"shopify-insights/internal/types"
)

// FetchRequest is the request body for the insights endpoint.
type FetchRequest struct {
	WebsiteURL string `json:"website_url" binding:"required,url"`
}

// Server holds the API server dependencies.
type Server struct {
	config     *config.Config
	logger     *logrus.Logger
	structurer types.Structurer
}

// NewServer creates a new API server, wiring the Gemini structurer when an
// API key is configured.
func NewServer(cfg *config.Config, logger *logrus.Logger) (*Server, error) {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	if cfg.Gemini.APIKey != "" {
		client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, err
		}
		s.structurer = gemini.NewStructurer(client, logger)
		logger.Info("Gemini structuring enabled")
	} else {
		logger.Info("GEMINI_API_KEY not set, structuring step disabled")
	}

	return s, nil
}

// handleFetchInsights extracts a brand profile for the requested website.
// A profile without the platform signal is reported as not found; schema
// violations and unexpected failures are server errors.
func (s *Server) handleFetchInsights(c *gin.Context) {
	var req FetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "website_url must be a valid URL"})
		return
	}

	// Fresh extractor per request: no shared state across requests.
	ext := extractor.NewBrandExtractor(s.config, s.logger)
	defer ext.Close()

	profile, err := ext.Extract(c.Request.Context(), req.WebsiteURL)
	if err != nil {
		s.logger.Errorf("Extraction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !profile.IsShopify {
		c.JSON(http.StatusNotFound, gin.H{"error": "website not found or not a Shopify store"})
		return
	}

	if err := types.ValidateProfile(profile); err != nil {
		s.logger.Errorf("Assembled profile failed validation: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "profile failed schema validation"})
		return
	}

	if s.structurer != nil {
		structured, err := s.structurer.Structure(c.Request.Context(), profile)
		if err != nil {
			var schemaErr *types.SchemaError
			if errors.As(err, &schemaErr) {
				s.logger.Errorf("Structured profile failed validation: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "structured profile failed schema validation"})
				return
			}
			s.logger.Errorf("Structuring step failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		profile = structured
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Router builds the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if s.config.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/fetch-insights", s.handleFetchInsights)
	router.GET("/health", s.handleHealth)

	return router
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server, err := NewServer(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	logger.Infof("Starting API server on port %s", cfg.Server.Port)
	logger.Info("Available endpoints:")
	logger.Info("  POST /fetch-insights - Extract a brand profile from a storefront")
	logger.Info("  GET  /health         - Health check")

	if err := server.Router().Run(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}
