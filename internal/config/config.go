package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds everything the application reads from the environment.
type Config struct {
	AppPort     string
	StoreDriver string
	DatabaseDSN string
	JWTSecret   string
	RabbitMQURL string
	CORSOrigins string

	LogLevel  string
	LogFormat string

	ChatReplyDelay   time.Duration
	VoiceDelay       time.Duration
	AnalysisDuration time.Duration
	AnalysisTick     time.Duration

	SessionTTL        time.Duration
	AnalysisRetention time.Duration
}

// Load reads an optional .env file, then the environment. Variables already set
// in the environment win over the file.
func Load(envPath ...string) (*Config, error) {
	if err := godotenv.Load(envPath...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("DATABASE_DSN", "file:farmconnect.db?cache=shared")
	v.SetDefault("JWT_SECRET", "supersecretjwtkey")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "color")
	v.SetDefault("CHAT_REPLY_DELAY", "1500ms")
	v.SetDefault("VOICE_DELAY", "2000ms")
	v.SetDefault("ANALYSIS_DURATION", "2000ms")
	v.SetDefault("ANALYSIS_TICK", "200ms")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("ANALYSIS_RETENTION", "10m")
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		CORSOrigins:      v.GetString("CORS_ORIGINS"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		ChatReplyDelay:   v.GetDuration("CHAT_REPLY_DELAY"),
		VoiceDelay:       v.GetDuration("VOICE_DELAY"),
		AnalysisDuration: v.GetDuration("ANALYSIS_DURATION"),
		AnalysisTick:     v.GetDuration("ANALYSIS_TICK"),

		SessionTTL:        v.GetDuration("SESSION_TTL"),
		AnalysisRetention: v.GetDuration("ANALYSIS_RETENTION"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverPostgres && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required for the postgres driver")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	switch c.LogFormat {
	case "color", "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// Level returns the configured slog level, info if unparsable.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
