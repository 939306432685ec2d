package config

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"strings"
	"time"

	"github.com/david5010/AetherGrid/internal/grid"
	"github.com/david5010/AetherGrid/internal/providers/openmeteo"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Meteo  MeteoConfig
	Grid   GridConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// MeteoConfig holds the Open-Meteo client configuration
type MeteoConfig struct {
	BaseURL         string
	Timeout         time.Duration // 0 means no client timeout
	ResolveTimezone bool
	Defaults        MeteoDefaults
}

// MeteoDefaults are the request options used when a caller names no locations
type MeteoDefaults struct {
	Latitude     []float64
	Longitude    []float64
	Current      []string
	Minutely15   []string `mapstructure:"minutely_15"`
	Hourly       []string
	Daily        []string
	Timezone     string
	ForecastDays int `mapstructure:"forecast_days"`

	// Extra is passed through as-is (timeformat, temperature_unit, models, ...)
	Extra map[string]string
}

// GridConfig holds the grid operator endpoints
type GridConfig struct {
	Operators []grid.EndpointConfig
	Timeout   time.Duration
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.aethergrid")

	// Set defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("meteo.baseURL", openmeteo.DefaultBaseURL)
	v.SetDefault("meteo.timeout", 0)
	v.SetDefault("meteo.resolveTimezone", true)
	v.SetDefault("meteo.defaults.forecast_days", 0)
	v.SetDefault("grid.timeout", 30*time.Second)

	// Read from environment variables, e.g. AETHERGRID_SERVER_PORT
	v.SetEnvPrefix("AETHERGRID")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// MeteoParams returns the configured default request, or nil when no locations are configured
func (c *Config) MeteoParams() *openmeteo.Params {
	d := c.Meteo.Defaults
	if len(d.Latitude) == 0 && len(d.Longitude) == 0 {
		return nil
	}
	return &openmeteo.Params{
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		Current:      d.Current,
		Minutely15:   d.Minutely15,
		Hourly:       d.Hourly,
		Daily:        d.Daily,
		Timezone:     d.Timezone,
		ForecastDays: d.ForecastDays,
		Extra:        maps.Clone(d.Extra),
	}
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
