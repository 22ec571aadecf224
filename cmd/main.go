package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"shopify-insights/config"
	"shopify-insights/extractor"
	"shopify-insights/internal/types"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	var (
		urlFlag    = flag.String("url", "", "Storefront URL to extract insights from")
		outputFlag = flag.String("output", "", "Output file path (default: stdout)")
		timeout    = flag.Duration("timeout", 2*time.Minute, "Overall extraction deadline")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if *urlFlag == "" {
		log.Fatal("The --url flag is required")
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	if levelStr := os.Getenv("LOG_LEVEL"); levelStr != "" {
		if level, err := logrus.ParseLevel(levelStr); err == nil {
			logger.SetLevel(level)
		}
	} else if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.Fetch.ExtractTimeout = *timeout

	ext := extractor.NewBrandExtractor(cfg, logger)
	defer ext.Close()

	profile, err := ext.Extract(context.Background(), *urlFlag)
	if err != nil {
		logger.Fatalf("Extraction failed: %v", err)
	}

	if err := types.ValidateProfile(profile); err != nil {
		logger.Fatalf("Profile failed schema validation: %v", err)
	}

	jsonData, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		logger.Fatalf("Failed to marshal profile: %v", err)
	}

	if *outputFlag != "" {
		if err := os.WriteFile(*outputFlag, jsonData, 0644); err != nil {
			logger.Fatalf("Failed to write output file: %v", err)
		}
		logger.Infof("Profile written to: %s", *outputFlag)
	} else {
		fmt.Println(string(jsonData))
	}
}
