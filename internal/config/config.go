package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Storage URLs (both optional)
	PostgresURL string
	RedisURL    string

	// Projection inputs
	DataDir          string
	ProjectionSeason int

	// Valuation defaults
	LeagueSize              int
	HeadCount               int
	IncludeZeroPointPlayers bool

	// Dynasty sources
	SleeperBaseURL string
	MarketSheetURL string
	MarketSheetTab string
	FuzzyCutoff    float64
	PickSeasons    int
	PickRounds     int

	// Cache TTLs
	MarketCacheTTL  time.Duration
	PlayersCacheTTL time.Duration
	LeagueCacheTTL  time.Duration

	// Refresh pool
	WorkerCount     int
	QueueSize       int
	RefreshInterval time.Duration
	FetchTimeout    time.Duration
	MaxTrackedJobs  int

	// Sessions
	SessionTTL time.Duration
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		PostgresURL: getEnv("POSTGRES_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		DataDir:          getEnv("DATA_DIR", "./data"),
		ProjectionSeason: getEnvInt("PROJECTION_SEASON", time.Now().Year()),

		LeagueSize:              getEnvInt("LEAGUE_SIZE", 10),
		HeadCount:               getEnvInt("HEAD_COUNT", 5),
		IncludeZeroPointPlayers: getEnvBool("INCLUDE_ZERO_POINT_PLAYERS", false),

		SleeperBaseURL: getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		MarketSheetURL: getEnv("MARKET_SHEET_URL", ""),
		MarketSheetTab: getEnv("MARKET_SHEET_TAB", "SF"),
		FuzzyCutoff:    getEnvFloat("FUZZY_CUTOFF", 0.8),
		PickSeasons:    getEnvInt("PICK_SEASONS", 3),
		PickRounds:     getEnvInt("PICK_ROUNDS", 5),

		MarketCacheTTL:  getEnvDuration("MARKET_CACHE_TTL", 24*time.Hour),
		PlayersCacheTTL: getEnvDuration("PLAYERS_CACHE_TTL", 24*time.Hour),
		LeagueCacheTTL:  getEnvDuration("LEAGUE_CACHE_TTL", time.Hour),

		WorkerCount:     getEnvInt("WORKER_COUNT", 2),
		QueueSize:       getEnvInt("QUEUE_SIZE", 100),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 30*time.Minute),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 15*time.Second),
		MaxTrackedJobs:  getEnvInt("MAX_TRACKED_JOBS", 50),

		SessionTTL: getEnvDuration("SESSION_TTL", 12*time.Hour),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if cfg.LeagueSize < 2 {
		return nil, fmt.Errorf("LEAGUE_SIZE must be at least 2, got %d", cfg.LeagueSize)
	}
	if cfg.FuzzyCutoff <= 0 || cfg.FuzzyCutoff > 1 {
		return nil, fmt.Errorf("FUZZY_CUTOFF must be in (0, 1], got %v", cfg.FuzzyCutoff)
	}

	// Critical configuration - fail if missing
	if cfg.Env == "production" {
		var err error
		if cfg.MarketSheetURL, err = getEnvRequired("MARKET_SHEET_URL"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether ENV selects development logging.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
