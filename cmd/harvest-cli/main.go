package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"bizharvest/internal/adapters/browser"
	"bizharvest/internal/adapters/httpsession"
	"bizharvest/internal/adapters/localstorage"
	"bizharvest/internal/adapters/postgres"
	"bizharvest/internal/config"
	"bizharvest/internal/core/ports"
	"bizharvest/internal/profiles"
	"bizharvest/internal/service"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	configPath := flag.String("config", "", "Optional JSON config file")
	locations := flag.String("locations", "", "Locations to search, ;-separated (overrides HARVEST_LOCATIONS)")
	terms := flag.String("terms", "", "Search terms, ;-separated (overrides HARVEST_TERMS)")
	outputDir := flag.String("output-dir", "", "Directory for checkpoints and exports (overrides OUTPUT_DIR)")
	mode := flag.String("mode", "", "Session mode: chrome or http (overrides SESSION_MODE)")
	minYears := flag.Int("min-years", -1, "Minimum years in business (overrides MIN_YEARS)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *locations != "" {
		cfg.Locations = config.SplitList(*locations)
	}
	if *terms != "" {
		cfg.Terms = config.SplitList(*terms)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *mode != "" {
		cfg.SessionMode = *mode
	}
	if *minYears >= 0 {
		cfg.MinYears = *minYears
	}

	logger := newLogger(cfg.LogLevel)
	if envErr != nil {
		logger.Debug("no .env file found")
	}

	if err := cfg.Validate(); err != nil {
		if eris.Is(err, config.ErrNoTasks) {
			fmt.Println("Usage: harvest-cli -locations \"Boise, ID;Nampa, ID\" -terms \"roofing;tree service\" [-output-dir ./data] [-mode chrome|http]")
			fmt.Println("\nLocations and terms can also come from HARVEST_LOCATIONS / HARVEST_TERMS or a -config file.")
		}
		logger.WithError(err).Fatal("invalid configuration")
	}

	profile, err := profiles.Lookup(cfg.SiteProfile, cfg.SiteBaseURL)
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	tasks := cfg.Tasks()
	logger.WithFields(logrus.Fields{
		"profile":    profile.Name,
		"tasks":      len(tasks),
		"mode":       cfg.SessionMode,
		"output_dir": cfg.OutputDir,
		"min_years":  cfg.MinYears,
		"max_pages":  cfg.MaxPages,
	}).Info("=== Business Directory Harvester ===")

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Warn("received interrupt signal, finishing current step and saving")
		cancel()
	}()

	// Initialize adapters
	var sessions ports.SessionFactory
	switch cfg.SessionMode {
	case config.ModeHTTP:
		sessions = httpsession.NewFactory(&http.Client{Timeout: 2 * time.Minute}, "")
	default:
		sessions = browser.NewFactory(browser.Options{
			Headless:      cfg.Headless,
			ActionTimeout: time.Duration(cfg.WaitTimeoutMs) * time.Millisecond,
		})
	}

	storage := localstorage.NewLocalStorage(cfg.OutputDir)
	if err := storage.Init(ctx); err != nil {
		logger.WithError(err).Fatal("failed to prepare output directory")
	}

	var sink ports.ResultSink
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize result sink")
		}
		defer pg.Close()
		sink = pg
	}

	// Create orchestrator
	orchestrator := service.NewOrchestrator(cfg.Settings(), profile, sessions, storage, sink, logger)
	if err := orchestrator.Restore(ctx); err != nil {
		logger.WithError(err).Fatal("failed to restore checkpoint")
	}

	result, runErr := orchestrator.Run(ctx, tasks)
	if runErr != nil {
		logger.WithError(runErr).Warn("run stopped early")
	}

	// Print summary
	fmt.Println("\n=== Run Summary ===")
	fmt.Printf("Run ID:       %s\n", result.Run.ID)
	fmt.Printf("Tasks:        %d/%d\n", result.Progress.ProcessedTasks, result.Progress.TotalTasks)
	fmt.Printf("Records:      %d (%d new)\n", len(result.Records), result.NewRecords)
	fmt.Printf("Visited URLs: %d\n", result.Visited)
	if len(result.FailedLocations) > 0 {
		fmt.Printf("Failed:       %s\n", strings.Join(result.FailedLocations, "; "))
	}
	if result.FinalPath != "" {
		fmt.Printf("Export:       %s\n", result.FinalPath)
	}
	fmt.Printf("Checkpoint:   %s\n", storage.GetPath("results.csv"))
	fmt.Printf("Completed At: %s\n", result.CompletedAt.Format("2006-01-02 15:04:05 UTC"))

	if runErr != nil {
		os.Exit(130)
	}
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
