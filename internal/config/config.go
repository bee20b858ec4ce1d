package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration. Precedence is
// defaults < YAML file < environment (prefix RETAILPULSE).
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Source    SourceConfig    `yaml:"source" envconfig:"SOURCE"`
	Analytics AnalyticsConfig `yaml:"analytics" envconfig:"ANALYTICS"`
	Reports   ReportsConfig   `yaml:"reports" envconfig:"REPORTS"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SourceConfig locates the raw transaction source.
type SourceConfig struct {
	// File is the workbook or CSV export of raw transaction lines.
	File string `yaml:"file" envconfig:"FILE"`

	// Sheet optionally pins the workbook sheet to read. Empty means the
	// loader picks the sheet whose header carries the expected columns.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
}

// AnalyticsConfig tunes the aggregation engine.
type AnalyticsConfig struct {
	// DominantCountry is the label whose presence in the grouped country set
	// flips the country-share view to the rest-of-world branch. In the
	// reference dataset this is the seller's home country.
	DominantCountry string `yaml:"dominant_country" envconfig:"DOMINANT_COUNTRY"`

	// TopN is the ranking size for product and country rankings.
	TopN int `yaml:"top_n" envconfig:"TOP_N"`
}

// ReportsConfig controls CLI report export.
type ReportsConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Output:   "console",
			FilePath: "logs/retailpulse.log",
		},
		Source: SourceConfig{
			File: "data/Online Retail.xlsx",
		},
		Analytics: AnalyticsConfig{
			DominantCountry: "United Kingdom",
			TopN:            10,
		},
		Reports: ReportsConfig{
			Dir: "reports",
		},
	}
}

// Load loads configuration from the default file location and environment.
func Load() (*Config, error) {
	return LoadFrom(configFilePath())
}

// LoadFrom loads configuration layered over an explicit YAML file; a missing
// file is not an error, defaults and environment stand alone.
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", configFile, err)
			}
		}
	}

	// Environment wins over the file; unset variables leave values alone.
	if err := envconfig.Process("RETAILPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Analytics.TopN <= 0 {
		return fmt.Errorf("analytics top_n must be positive, got %d", c.Analytics.TopN)
	}
	if c.Analytics.DominantCountry == "" {
		return fmt.Errorf("analytics dominant_country must not be empty")
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %q", c.Logging.Output)
	}
	return nil
}

// configFilePath returns the default config file location, next to the
// executable when resolvable, else the working directory.
func configFilePath() string {
	const name = "retailpulse.yaml"
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return name
}
