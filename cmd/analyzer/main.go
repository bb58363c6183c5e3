package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/olegiv/gclogs-analyzer-go/internal/analyzer"
	"github.com/olegiv/gclogs-analyzer-go/internal/config"
	"github.com/olegiv/gclogs-analyzer-go/internal/gpx"
	"github.com/olegiv/gclogs-analyzer-go/internal/logging"
	"github.com/olegiv/gclogs-analyzer-go/internal/notification"
	"github.com/olegiv/gclogs-analyzer-go/internal/report"
	"github.com/olegiv/go-logger"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

// Version information - injected at build time via ldflags
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse CLI arguments first
	cli := config.ParseCLI()

	// Handle -help flag and missing positional arguments
	if cli.ShowHelp || (!cli.ShowVersion && !cli.HasPaths()) {
		config.PrintUsage()
		return exitSuccess
	}

	// Handle -version flag
	if cli.ShowVersion {
		fmt.Printf("gclogs-analyzer %s\n", version)
		if gitCommit != "unknown" {
			fmt.Printf("  commit: %s\n", gitCommit)
		}
		if buildTime != "unknown" {
			fmt.Printf("  built:  %s\n", buildTime)
		}
		return exitSuccess
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Load configuration with CLI overrides
	cfg, err := config.LoadWithCLI(cli)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitFailure
	}

	baseLog := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		LogDir:     cfg.LogDir,
		MaxSizeMB:  10,
		MaxBackups: 5,
		Console:    true,
	})
	log := logging.NewSecure(baseLog)
	defer func() {
		if err := log.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to close logger: %v\n", err)
		}
	}()

	log.Info().
		Str("version", version).
		Str("input", cfg.InputPath).
		Str("output", cfg.OutputPath).
		Msg("Starting GC Logs Analyzer")

	if err := runAnalyzer(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("Analysis failed")
		return exitFailure
	}

	log.Info().Msg("Analysis completed successfully")
	return exitSuccess
}

func runAnalyzer(ctx context.Context, cfg *config.Config, log *logging.SecureLogger) error {
	startTime := time.Now()
	runID := uuid.NewString()
	log.Info().Str("run_id", runID).Msg("Run started")

	// 1. Read the GPX export
	var source analyzer.RecordSource = gpx.NewReader(cfg.MaxInputSizeMB)

	log.Info().Str("path", cfg.InputPath).Msg("Reading GPX file...")
	records, err := source.Read(cfg.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read finds: %w", err)
	}

	if sourceInfo, err := source.GetSourceInfo(cfg.InputPath); err == nil {
		log.Debug().Fields(sourceInfo).Msg("Source file info")
	}
	log.Info().Int("records", len(records)).Msg("GPX file read successfully")

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	// 2. Run the analyses
	opts := analyzer.Options{
		HomeCountry:         cfg.HomeCountry,
		AnniversaryInterval: cfg.AnniversaryInterval,
		MinOwnerFounds:      cfg.MinOwnerFounds,
	}

	doc := report.NewDocument()
	err = analyzer.Run(records, doc, opts, logSection(log))
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted: %w", err)
	}

	// 3. Write the report
	if err := doc.WriteFile(cfg.OutputPath, cfg.HTMLPageWrapper); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	summary := analyzer.Summarize(records)
	summary.RunID = runID
	summary.Sections = doc.Len()

	log.Info().
		Str("run_id", runID).
		Str("path", cfg.OutputPath).
		Int("sections", summary.Sections).
		Int("found_logs", summary.FoundLogs).
		Int("countries", summary.Countries).
		Time("first_found", summary.FirstFound).
		Time("latest_found", summary.LatestFound).
		Msg("Report written")

	// 4. Notify (optional)
	if cfg.NotificationsEnabled() {
		notify(cfg, summary, log)
	}

	log.Info().
		Float64("total_duration_s", time.Since(startTime).Seconds()).
		Msg("All operations completed successfully")

	return nil
}

// notify posts the run summary. The report is already written, so failures
// are only logged.
func notify(cfg *config.Config, summary analyzer.Summary, log *logging.SecureLogger) {
	telegramClient, err := notification.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramChannelID)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Telegram client")
		return
	}
	defer func() {
		if err := telegramClient.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Telegram client")
		}
	}()

	botInfo := telegramClient.GetBotInfo()
	log.Info().
		Str("username", botInfo["username"].(string)).
		Msg("Telegram bot initialized")

	if err := telegramClient.SendRunSummary(summary, cfg.OutputPath); err != nil {
		log.Warn().Err(err).Msg("Failed to send Telegram notification")
		return
	}
	log.Info().Msg("Telegram notification sent")
}

// logSection reports every section as it is added to the report.
func logSection(log *logging.SecureLogger) analyzer.SectionFunc {
	return func(step *analyzer.Step, rows int) {
		log.Info().
			Str("anchor", step.Anchor).
			Str("title", step.Title).
			Int("rows", rows).
			Msg("Section added")
	}
}
