// -----------------------------------------------------------------------
// Application - Wires configuration, engines, storage and the pipeline
// -----------------------------------------------------------------------

package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/zapply/internal/ats"
	"github.com/ternarybob/zapply/internal/common"
	"github.com/ternarybob/zapply/internal/geo"
	"github.com/ternarybob/zapply/internal/httpclient"
	"github.com/ternarybob/zapply/internal/models"
	"github.com/ternarybob/zapply/internal/pipeline"
	"github.com/ternarybob/zapply/internal/storage"
	"github.com/ternarybob/zapply/internal/tagging"
)

// App owns the long-lived collaborators for one or more pipeline runs.
type App struct {
	config    *common.Config
	logger    arbor.ILogger
	client    *httpclient.Client
	enricher  *ats.Enricher
	filter    *pipeline.Filter
	tagEngine *tagging.Engine
	geoEngine *geo.Engine
	store     storage.Store
}

// New builds the application: compiles the filter, loads the gazetteer,
// and opens the configured persistence adapter.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	filter, err := pipeline.NewFilter(
		config.Scraper.KeywordsRegex,
		config.Scraper.NegativeKeywordsRegex,
		config.Scraper.MaxAgeDays,
		config.Scraper.EOIMaxAgeDays,
	)
	if err != nil {
		return nil, err
	}

	client := httpclient.New(
		httpclient.WithTimeout(config.Scraper.RequestTimeout),
		httpclient.WithRateLimit(config.Scraper.RateLimit),
		httpclient.WithUserAgent(config.Scraper.UserAgent),
		httpclient.WithLogger(logger),
	)

	geoEngine := geo.NewEngine(logger)
	if err := geoEngine.LoadGeonames(config.Geo.CitiesFile, config.Geo.Admin1File, config.Geo.CountryFile); err != nil {
		return nil, err
	}

	store, err := openStore(config, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    config,
		logger:    logger,
		client:    client,
		enricher:  ats.NewEnricher(client, logger, config.Scraper.EnrichConcurrency),
		filter:    filter,
		tagEngine: tagging.NewDefaultEngine(),
		geoEngine: geoEngine,
		store:     store,
	}, nil
}

func openStore(config *common.Config, logger arbor.ILogger) (storage.Store, error) {
	if config.Storage.Mode == "remote" {
		logger.Info().Msg("Storage: remote (Cloudflare D1)")
		return storage.NewD1Store(
			config.Storage.D1.AccountID,
			config.Storage.D1.DatabaseID,
			config.Storage.D1.APIToken,
			logger,
		), nil
	}
	logger.Info().Str("path", config.Storage.SQLite.Path).Msg("Storage: local (SQLite)")
	return storage.NewSQLiteStore(config.Storage.SQLite.Path, logger)
}

// Run executes one full pipeline pass. limit > 0 truncates the company
// list, which is useful for smoke-testing against live boards.
func (a *App) Run(ctx context.Context, limit int) (pipeline.Summary, error) {
	companies, err := loadCompanies(a.config.Scraper.SlugsFile)
	if err != nil {
		return pipeline.Summary{}, err
	}
	if limit > 0 && limit < len(companies) {
		a.logger.Info().Int("limit", limit).Msg("Limiting company list")
		companies = companies[:limit]
	}

	if err := a.store.InitializeGeoTables(ctx, a.geoEngine.Countries(), a.geoEngine.Regions()); err != nil {
		return pipeline.Summary{}, err
	}

	existing, err := a.store.ExistingIDs(ctx)
	if err != nil {
		return pipeline.Summary{}, fmt.Errorf("failed to load existing job ids: %w", err)
	}

	cached, err := storage.LoadCache(a.config.Scraper.CacheFile)
	if err != nil {
		return pipeline.Summary{}, err
	}

	seen := make(map[string]struct{}, len(existing)+len(cached))
	for id := range existing {
		seen[id] = struct{}{}
	}
	for id := range cached {
		seen[id] = struct{}{}
	}
	a.logger.Info().
		Int("companies", len(companies)).
		Int("known_ids", len(seen)).
		Msg("Pipeline inputs loaded")

	orchestrator := pipeline.NewOrchestrator(pipeline.Options{
		Client:       a.client,
		Enricher:     a.enricher,
		Filter:       a.filter,
		TagEngine:    a.tagEngine,
		GeoEngine:    a.geoEngine,
		Store:        a.store,
		Logger:       a.logger,
		OutcomeLog:   common.NewOutcomeLogger(a.config.Logging.LogFile),
		Concurrency:  a.config.Scraper.Concurrency,
		BatchSize:    a.config.Scraper.BatchSize,
		ShowProgress: a.config.Environment != "production",
	}, seen)

	summary := orchestrator.Run(ctx, companies)

	if err := storage.SaveCache(a.config.Scraper.CacheFile, orchestrator.Seen()); err != nil {
		return summary, err
	}
	return summary, nil
}

// Close releases the persistence adapter.
func (a *App) Close() error {
	return a.store.Close()
}

// loadCompanies reads the curated slugs file.
func loadCompanies(path string) ([]models.Company, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read slugs file %s: %w", path, err)
	}
	var companies []models.Company
	if err := json.Unmarshal(data, &companies); err != nil {
		return nil, fmt.Errorf("failed to parse slugs file %s: %w", path, err)
	}
	return companies, nil
}
