// -----------------------------------------------------------------------
// Zapply - Early-career job postings aggregator
// -----------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/zapply/internal/app"
	"github.com/ternarybob/zapply/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	prodMode     = flag.Bool("prod", false, "Use the remote persistence adapter")
	limit        = flag.Int("limit", 0, "Process only the first N companies")
	logFile      = flag.String("log-file", "", "Append per-company outcomes to this file")
	verbose      = flag.Bool("log", false, "Verbose (debug) logging")
	schedule     = flag.String("schedule", "", "Cron expression; run on a schedule instead of once")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	if *showVersion || *showVersionV {
		fmt.Printf("Zapply version %s\n", common.GetVersion())
		os.Exit(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("zapply.toml"); err == nil {
			configFiles = append(configFiles, "zapply.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	common.ApplyFlagOverrides(config, *prodMode, *logFile, *verbose, *schedule)

	if err := config.Validate(); err != nil {
		arbor.NewLogger().Fatal().Err(err).Msg("Invalid configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)
	common.PrintBanner(common.GetVersion())

	logger.Debug().
		Str("storage_mode", config.Storage.Mode).
		Str("slugs_file", config.Scraper.SlugsFile).
		Int("concurrency", config.Scraper.Concurrency).
		Str("log_level", config.Logging.Level).
		Msg("Configuration resolved")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}
	defer application.Close()

	if config.Schedule != "" {
		runScheduled(application, config.Schedule)
		return
	}

	if err := runOnce(application); err != nil {
		os.Exit(1)
	}
}

// runOnce executes a single pipeline pass.
func runOnce(application *app.App) error {
	summary, err := application.Run(context.Background(), *limit)
	if err != nil {
		logger.Error().Err(err).Msg("Run failed")
		return err
	}
	logger.Info().
		Int("inserted", summary.JobsInserted).
		Msgf("Done! Found %d new early-career roles", summary.JobsInserted)
	return nil
}

// runScheduled runs the pipeline on a cron schedule until interrupted.
// Overlapping runs are prevented; a tick arriving mid-run is skipped.
func runScheduled(application *app.App, spec string) {
	running := make(chan struct{}, 1)

	scheduler := cron.New()
	_, err := scheduler.AddFunc(spec, func() {
		select {
		case running <- struct{}{}:
		default:
			logger.Warn().Msg("Previous run still in progress, skipping tick")
			return
		}
		common.SafeGo(logger, "scheduled-run", func() {
			defer func() { <-running }()
			runOnce(application)
		})
	})
	if err != nil {
		logger.Fatal().Str("schedule", spec).Err(err).Msg("Invalid cron expression")
		os.Exit(1)
	}

	logger.Info().Str("schedule", spec).Msg("Scheduler started")
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down scheduler")
	<-scheduler.Stop().Done()
}
