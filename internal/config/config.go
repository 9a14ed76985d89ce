package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string      `mapstructure:"env"` // current application environment (local, dev, production etc)
	TelegramAPIToken string      `mapstructure:"-"`   // optional, the bot is disabled when empty
	JWTSecret        string      `mapstructure:"-"`   // HMAC secret shared with the auth service
	HTTP             HTTP        `mapstructure:"http"`
	DB               DB          `mapstructure:"database"`
	Redis            Redis       `mapstructure:"redis"`
	Progress         Progress    `mapstructure:"progress"`
	Maintenance      Maintenance `mapstructure:"maintenance"`
}

// HTTP contains API server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`  // apply embedded migrations at start-up
}

// Redis configures the lesson count cache. Caching is off when URL is empty.
type Redis struct {
	URL      string        `mapstructure:"-"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Progress holds parameters of the progress engine.
type Progress struct {
	Timezone            string `mapstructure:"timezone"`               // location used for calendar-day streak math
	WordsPerVocabLesson int    `mapstructure:"words_per_vocab_lesson"` // wordsLearned increment per vocab lesson
}

// Maintenance configures background repair jobs.
type Maintenance struct {
	CounterResyncEnabled  bool   `mapstructure:"counter_resync_enabled"`
	CounterResyncSchedule string `mapstructure:"counter_resync_schedule"` // cron spec, UTC
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine, real deployments use the process environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "10s")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("http.allowed_origins", []string{"*"})

	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.migrate_on_start", true)

	v.SetDefault("redis.cache_ttl", "10m")

	v.SetDefault("progress.timezone", "UTC")
	v.SetDefault("progress.words_per_vocab_lesson", 10)

	v.SetDefault("maintenance.counter_resync_enabled", true)
	v.SetDefault("maintenance.counter_resync_schedule", "30 3 * * *")
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come from the environment only.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.Redis.URL = v.GetString("redis_url")

	cfg.JWTSecret = v.GetString("jwt_secret")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("%w: JWT_SECRET", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	if cfg.Progress.WordsPerVocabLesson < 0 {
		return nil, fmt.Errorf("progress.words_per_vocab_lesson must not be negative")
	}

	return &cfg, nil
}
