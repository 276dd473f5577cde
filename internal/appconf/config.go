package appconf

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// SourceKind selects where tag counts are queried from.
type SourceKind string

const (
	SourceBigQuery SourceKind = "bigquery"
	SourceSQLite   SourceKind = "sqlite"
)

// Config holds all the configuration settings for the Application. It is
// built once at startup from an optional YAML file and command-line flags,
// and is never mutated afterwards.
type Config struct {
	Port     int
	Env      Environment
	LogLevel slog.Level

	Source SourceKind

	// BigQuery settings, used when Source is SourceBigQuery.
	ProjectID       string
	CredentialsFile string

	// SQLitePath points at a local mirror of the questions table, used when
	// Source is SourceSQLite.
	SQLitePath string

	// RateLimit is the number of trend requests served per second across all
	// clients. Zero or negative disables limiting.
	RateLimit int
}

// Default returns the settings used when neither a file nor a flag says otherwise.
func Default() Config {
	return Config{
		Port:            5000,
		Env:             Development,
		LogLevel:        slog.LevelInfo,
		Source:          SourceBigQuery,
		CredentialsFile: "keys/service-account.json",
		RateLimit:       5,
	}
}

type fileConfig struct {
	Port     *int    `yaml:"port"`
	Env      *string `yaml:"env"`
	LogLevel *string `yaml:"log_level"`
	Source   *string `yaml:"source"`
	BigQuery struct {
		ProjectID       *string `yaml:"project_id"`
		CredentialsFile *string `yaml:"credentials_file"`
	} `yaml:"bigquery"`
	SQLite struct {
		Path *string `yaml:"path"`
	} `yaml:"sqlite"`
	RateLimit *int `yaml:"rate_limit"`
}

// LoadFile overlays the settings present in the YAML file at path onto cfg.
// Keys missing from the file leave cfg unchanged.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.Port != nil {
		cfg.Port = *fc.Port
	}
	if fc.Env != nil {
		cfg.Env = EnvFlagToEnvironment(*fc.Env)
	}
	if fc.LogLevel != nil {
		level, err := ParseLogLevel(*fc.LogLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if fc.Source != nil {
		cfg.Source = SourceKind(strings.ToLower(*fc.Source))
	}
	if fc.BigQuery.ProjectID != nil {
		cfg.ProjectID = *fc.BigQuery.ProjectID
	}
	if fc.BigQuery.CredentialsFile != nil {
		cfg.CredentialsFile = *fc.BigQuery.CredentialsFile
	}
	if fc.SQLite.Path != nil {
		cfg.SQLitePath = *fc.SQLite.Path
	}
	if fc.RateLimit != nil {
		cfg.RateLimit = *fc.RateLimit
	}
	return nil
}

// ParseLogLevel accepts the names understood by slog.Level.UnmarshalText.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Validate reports every inconsistent setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}

	switch c.Source {
	case SourceBigQuery:
		if c.ProjectID == "" {
			errs = append(errs, errors.New("bigquery source requires a project id"))
		}
		if c.CredentialsFile == "" {
			errs = append(errs, errors.New("bigquery source requires a credentials file"))
		}
	case SourceSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite source requires a database path"))
		} else if c.Env == Test && c.SQLitePath != ":memory:" {
			errs = append(errs, fmt.Errorf("test environment must use an in-memory database, got %s", c.SQLitePath))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source %q", c.Source))
	}

	return errors.Join(errs...)
}
