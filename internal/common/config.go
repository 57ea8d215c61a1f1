package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Scraper     ScraperConfig `toml:"scraper"`
	Geo         GeoConfig     `toml:"geo"`
	Storage     StorageConfig `toml:"storage"`
	Logging     LoggingConfig `toml:"logging"`
	Schedule    string        `toml:"schedule"` // Cron expression; empty = single run
}

// ScraperConfig controls the fetch/parse/enrich pipeline.
type ScraperConfig struct {
	SlugsFile             string        `toml:"slugs_file" validate:"required"`
	CacheFile             string        `toml:"cache_file" validate:"required"`
	Concurrency           int           `toml:"concurrency" validate:"gte=1"`        // Outer company fan-out
	EnrichConcurrency     int           `toml:"enrich_concurrency" validate:"gte=1"` // Per-company detail-fetch fan-out
	BatchSize             int           `toml:"batch_size" validate:"gte=1"`         // Write buffer flush threshold
	KeywordsRegex         string        `toml:"keywords_regex" validate:"required"`
	NegativeKeywordsRegex string        `toml:"negative_keywords_regex" validate:"required"`
	MaxAgeDays            int           `toml:"max_age_days" validate:"gte=1"`     // Recency cutoff
	EOIMaxAgeDays         int           `toml:"eoi_max_age_days" validate:"gte=1"` // Relaxed cutoff for expression-of-interest roles
	RequestTimeout        time.Duration `toml:"request_timeout"`
	RateLimit             int           `toml:"rate_limit"` // Requests per second across all workers
	UserAgent             string        `toml:"user_agent"`
}

// GeoConfig points at the Geonames-format gazetteer files.
type GeoConfig struct {
	CitiesFile  string `toml:"cities_file" validate:"required"`
	Admin1File  string `toml:"admin1_file" validate:"required"`
	CountryFile string `toml:"country_file" validate:"required"`
}

// StorageConfig selects and configures the persistence adapter.
type StorageConfig struct {
	// Mode is "local" (SQLite) or "remote" (Cloudflare D1 HTTP API).
	// The --prod flag forces "remote".
	Mode   string       `toml:"mode" validate:"oneof=local remote"`
	SQLite SQLiteConfig `toml:"sqlite"`
	D1     D1Config     `toml:"d1"`
}

type SQLiteConfig struct {
	Path string `toml:"path"`
}

// D1Config carries the Cloudflare D1 credentials. All three are required
// when Mode is "remote"; they normally arrive via environment variables.
type D1Config struct {
	AccountID  string `toml:"account_id"`
	DatabaseID string `toml:"database_id"`
	APIToken   string `toml:"api_token"`
}

type LoggingConfig struct {
	Level   string   `toml:"level"`    // "debug", "info", "warn", "error"
	Output  []string `toml:"output"`   // "stdout", "file"
	LogFile string   `toml:"log_file"` // Per-company outcome log (--log-file)
}

// NewDefaultConfig creates a configuration with default values.
// Only user-facing settings should be exposed in zapply.toml; technical
// parameters are hardcoded here for production stability.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Scraper: ScraperConfig{
			SlugsFile:             "slugs.json",
			CacheFile:             "cache.json",
			Concurrency:           25,
			EnrichConcurrency:     10,
			BatchSize:             200,
			KeywordsRegex:         `(?i)\b(intern|apprentice|student|trainee|internship|fellowship|undergraduate|junior|jr|graduate|entry[-\s]level|associate)\b`,
			NegativeKeywordsRegex: `(?i)\b(senior|snr|sr|principal|lead|staff|director|vp|head\s+of|manager)\b`,
			MaxAgeDays:            60,
			EOIMaxAgeDays:         120,
			RequestTimeout:        30 * time.Second,
			RateLimit:             20,
			UserAgent:             "Zapply/1.0",
		},
		Geo: GeoConfig{
			CitiesFile:  "data/cities15000.txt",
			Admin1File:  "data/admin1CodesASCII.txt",
			CountryFile: "data/countryInfo.txt",
		},
		Storage: StorageConfig{
			Mode: "local",
			SQLite: SQLiteConfig{
				Path: "./data/zapply.db",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFiles loads configuration with priority:
// defaults -> file1 -> file2 -> ... -> env. Later files override earlier
// files; CLI flag overrides are applied separately by the caller.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("ZAPPLY_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Scraper configuration
	if slugs := os.Getenv("SLUGS_FILE"); slugs != "" {
		config.Scraper.SlugsFile = slugs
	}
	if cache := os.Getenv("CACHE_FILE"); cache != "" {
		config.Scraper.CacheFile = cache
	}
	if concurrency := os.Getenv("CONCURRENCY"); concurrency != "" {
		if c, err := strconv.Atoi(concurrency); err == nil {
			config.Scraper.Concurrency = c
		}
	}
	if keywords := os.Getenv("KEYWORDS_REGEX"); keywords != "" {
		config.Scraper.KeywordsRegex = keywords
	}
	if negative := os.Getenv("NEGATIVE_KEYWORDS_REGEX"); negative != "" {
		config.Scraper.NegativeKeywordsRegex = negative
	}

	// Gazetteer files
	if cities := os.Getenv("ZAPPLY_CITIES_FILE"); cities != "" {
		config.Geo.CitiesFile = cities
	}
	if admin1 := os.Getenv("ZAPPLY_ADMIN1_FILE"); admin1 != "" {
		config.Geo.Admin1File = admin1
	}
	if countries := os.Getenv("ZAPPLY_COUNTRY_FILE"); countries != "" {
		config.Geo.CountryFile = countries
	}

	// Remote adapter credentials
	if accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID"); accountID != "" {
		config.Storage.D1.AccountID = accountID
	}
	if databaseID := os.Getenv("CLOUDFLARE_DATABASE_ID"); databaseID != "" {
		config.Storage.D1.DatabaseID = databaseID
	}
	if apiToken := os.Getenv("CLOUDFLARE_API_TOKEN"); apiToken != "" {
		config.Storage.D1.APIToken = apiToken
	}

	// Logging configuration
	if level := os.Getenv("ZAPPLY_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority).
func ApplyFlagOverrides(config *Config, prod bool, logFile string, verbose bool, schedule string) {
	if prod {
		config.Storage.Mode = "remote"
	}
	if logFile != "" {
		config.Logging.LogFile = logFile
	}
	if verbose {
		config.Logging.Level = "debug"
	}
	if schedule != "" {
		config.Schedule = schedule
	}
}

// Validate checks structural constraints and the remote-credential
// requirement. Called once at startup; failures are fatal.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Storage.Mode == "remote" {
		if c.Storage.D1.AccountID == "" || c.Storage.D1.DatabaseID == "" || c.Storage.D1.APIToken == "" {
			return fmt.Errorf("remote storage requires CLOUDFLARE_ACCOUNT_ID, CLOUDFLARE_DATABASE_ID and CLOUDFLARE_API_TOKEN")
		}
	}
	return nil
}
