package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP            HTTPConfig
	RateLimit       RateLimitConfig
	Logging         LoggingConfig
	Cache           CacheConfig
	History         HistoryConfig
	Insight         InsightConfig
	AssumptionsFile string
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Addr returns host:port for net.Listen.
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig sizes the per-client token bucket on calculator routes.
type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level  string
	Format string // json|console
}

// CacheConfig selects the calculation result cache.
type CacheConfig struct {
	Backend       string // memory|redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

// HistoryConfig selects where calculation history is kept.
type HistoryConfig struct {
	Backend     string // memory|postgres|sqlite
	DatabaseURL string
	SQLitePath  string
}

// InsightConfig selects the answer provider for the intelligence hub.
type InsightConfig struct {
	Provider      string // scripted|openai|gemini
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	GeminiAPIKey  string
	GeminiModel   string
	TypingDelay   time.Duration
}

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"

	HistoryMemory   = "memory"
	HistoryPostgres = "postgres"
	HistorySQLite   = "sqlite"

	ProviderScripted = "scripted"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

const (
	defaultHost              = "0.0.0.0"
	defaultPort              = 8080
	defaultReadTimeout       = 10 * time.Second
	defaultWriteTimeout      = 15 * time.Second
	defaultIdleTimeout       = 60 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
	defaultRateLimitCapacity = 60
	defaultRateLimitWindow   = time.Minute
	defaultLoggingLevel      = "info"
	defaultLoggingFormat     = "json"
	defaultRedisAddr         = "localhost:6379"
	defaultCacheTTL          = 15 * time.Minute
	defaultSQLitePath        = "haus.db"
	defaultTypingDelay       = 40 * time.Millisecond
)

// Load reads an optional .env file, then configuration from environment
// variables, applying defaults.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Host: valueOrDefault("SERVER_HOST", defaultHost),
		},
		Logging: LoggingConfig{
			Level:  valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format: strings.ToLower(valueOrDefault("LOG_FORMAT", defaultLoggingFormat)),
		},
		Cache: CacheConfig{
			Backend:       strings.ToLower(valueOrDefault("CACHE_BACKEND", CacheMemory)),
			RedisAddr:     valueOrDefault("REDIS_ADDR", defaultRedisAddr),
			RedisPassword: os.Getenv("REDIS_PASSWORD"),
		},
		History: HistoryConfig{
			Backend:     strings.ToLower(valueOrDefault("HISTORY_BACKEND", HistoryMemory)),
			DatabaseURL: os.Getenv("DATABASE_URL"),
			SQLitePath:  valueOrDefault("SQLITE_PATH", defaultSQLitePath),
		},
		Insight: InsightConfig{
			Provider:      strings.ToLower(valueOrDefault("INSIGHT_PROVIDER", ProviderScripted)),
			OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
			OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
			OpenAIModel:   os.Getenv("OPENAI_MODEL"),
			GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
			GeminiModel:   os.Getenv("GEMINI_MODEL"),
		},
		AssumptionsFile: os.Getenv("ASSUMPTIONS_FILE"),
	}

	var err error
	if cfg.HTTP.Port, err = parsePort("SERVER_PORT", defaultPort); err != nil {
		return Config{}, err
	}

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", defaultReadTimeout, &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", defaultWriteTimeout, &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", defaultIdleTimeout, &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", defaultShutdownTimeout, &cfg.HTTP.ShutdownTimeout},
		{"RATE_LIMIT_WINDOW", defaultRateLimitWindow, &cfg.RateLimit.Window},
		{"CACHE_TTL", defaultCacheTTL, &cfg.Cache.TTL},
		{"TYPING_DELAY", defaultTypingDelay, &cfg.Insight.TypingDelay},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(d.key, d.fallback); err != nil {
			return Config{}, err
		}
	}

	if cfg.RateLimit.Capacity, err = parseInt("RATE_LIMIT_CAPACITY", defaultRateLimitCapacity); err != nil {
		return Config{}, err
	}
	if cfg.Cache.RedisDB, err = parseInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings and their dependencies.
func (c Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q (use json or console)", c.Logging.Format)
	}

	switch c.Cache.Backend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q (use memory or redis)", c.Cache.Backend)
	}

	switch c.History.Backend {
	case HistoryMemory, HistorySQLite:
	case HistoryPostgres:
		if c.History.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when HISTORY_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("invalid HISTORY_BACKEND %q (use memory, postgres or sqlite)", c.History.Backend)
	}

	switch c.Insight.Provider {
	case ProviderScripted, ProviderOpenAI:
	case ProviderGemini:
		if c.Insight.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when INSIGHT_PROVIDER=gemini")
		}
	default:
		return fmt.Errorf("invalid INSIGHT_PROVIDER %q (use scripted, openai or gemini)", c.Insight.Provider)
	}

	if c.RateLimit.Capacity <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("rate limit capacity and window must be positive")
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parsePort(key string, fallback int) (int, error) {
	port, err := parseInt(key, fallback)
	if err != nil {
		return 0, err
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("port %d is out of range", port)
	}
	return port, nil
}
