package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers for learned sets.
const (
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
	StorageMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`         // current application environment (local, dev, production)
	TelegramAPIToken string     `mapstructure:"-"`           // Telegram API token loaded from environment
	Storage          Storage    `mapstructure:"storage"`     // learned set persistence
	DB               DB         `mapstructure:"database"`    // database configuration section
	Redis            Redis      `mapstructure:"redis"`       // redis configuration section
	ContentAPI       ContentAPI `mapstructure:"content_api"` // remote catalog source
	Catalog          Catalog    `mapstructure:"catalog"`     // local catalog fallback
	Quiz             Quiz       `mapstructure:"quiz"`        // quiz defaults
	Progress         Progress   `mapstructure:"progress"`
}

// Storage selects the backend for learned sets.
type Storage struct {
	Driver string `mapstructure:"driver"` // postgres, redis or memory
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Redis contains redis connection and key settings.
type Redis struct {
	URL        string        `mapstructure:"-"`          // redis URL loaded from environment, empty disables redis
	KeyPrefix  string        `mapstructure:"key_prefix"` // namespace for every key written by the bot
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
}

// ContentAPI describes the external catalog endpoint.
type ContentAPI struct {
	BaseURL     string        `mapstructure:"base_url"`     // empty means the file catalog is used
	LettersPath string        `mapstructure:"letters_path"` // letters and numbers endpoint
	WordsPath   string        `mapstructure:"words_path"`   // basic words endpoint
	Timeout     time.Duration `mapstructure:"timeout"`
}

// Catalog configures the bundled catalog.
type Catalog struct {
	FallbackPath string `mapstructure:"fallback_path"`
}

// Quiz holds quiz defaults.
type Quiz struct {
	DefaultLength int   `mapstructure:"default_length"`
	Lengths       []int `mapstructure:"lengths"` // lengths offered in the quiz hub
}

// Progress bounds the learned sets kept in memory.
type Progress struct {
	MaxCachedLearners int `mapstructure:"max_cached_learners"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine, real environments set variables directly.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("storage.driver", StoragePostgres)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("redis.key_prefix", "auslan")
	v.SetDefault("redis.catalog_ttl", "10m")
	v.SetDefault("content_api.letters_path", "/api/signs/letters-numbers")
	v.SetDefault("content_api.words_path", "/api/signs/basic-words")
	v.SetDefault("content_api.timeout", "10s")
	v.SetDefault("catalog.fallback_path", "assets/data/catalog.json")
	v.SetDefault("quiz.default_length", 10)
	v.SetDefault("quiz.lengths", []int{5, 10, 15, 20})
	v.SetDefault("progress.max_cached_learners", 10000)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("content_api.base_url", "CONTENT_API_BASE_URL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	cfg.Redis.URL = v.GetString("redis_url")

	switch cfg.Storage.Driver {
	case StoragePostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case StorageRedis:
		if cfg.Redis.URL == "" {
			return nil, fmt.Errorf("%w: REDIS_URL", ErrMissingEnvironmentVariables)
		}
	case StorageMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	if cfg.Quiz.DefaultLength <= 0 {
		cfg.Quiz.DefaultLength = 10
	}

	return &cfg, nil
}
