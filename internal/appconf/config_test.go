package appconf

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestEnvFlagToEnvironment(t *testing.T) {
	assert.Equal(t, Test, EnvFlagToEnvironment("test"))
	assert.Equal(t, Production, EnvFlagToEnvironment("Production"))
	assert.Equal(t, Production, EnvFlagToEnvironment("prod"))
	assert.Equal(t, Development, EnvFlagToEnvironment("development"))
	assert.Equal(t, Development, EnvFlagToEnvironment("staging"))
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "production", Production.String())
	assert.Equal(t, "development", Development.String())
}

func TestLoadFile(t *testing.T) {
	t.Run("overlays present keys only", func(t *testing.T) {
		path := writeConfig(t, `
port: 8080
env: production
log_level: debug
source: SQLite
sqlite:
  path: /var/lib/trends/questions.db
`)
		cfg := Default()
		require.NoError(t, LoadFile(path, &cfg))

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, Production, cfg.Env)
		assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
		assert.Equal(t, SourceSQLite, cfg.Source)
		assert.Equal(t, "/var/lib/trends/questions.db", cfg.SQLitePath)
		assert.Equal(t, 5, cfg.RateLimit, "rate limit keeps its default")
		assert.Equal(t, "keys/service-account.json", cfg.CredentialsFile)
	})

	t.Run("reads bigquery settings", func(t *testing.T) {
		path := writeConfig(t, `
bigquery:
  project_id: datathon-2025
  credentials_file: /secrets/sa.json
rate_limit: 0
`)
		cfg := Default()
		require.NoError(t, LoadFile(path, &cfg))

		assert.Equal(t, "datathon-2025", cfg.ProjectID)
		assert.Equal(t, "/secrets/sa.json", cfg.CredentialsFile)
		assert.Equal(t, 0, cfg.RateLimit)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := Default()
		err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading config file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		cfg := Default()
		err := LoadFile(writeConfig(t, "port: [1, 2"), &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing config file")
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := Default()
		err := LoadFile(writeConfig(t, "log_level: chatty"), &cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.ProjectID = "datathon-2025"
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Port = 70000 },
			wantErr: "port 70000 out of range",
		},
		{
			name:    "bigquery without project",
			mutate:  func(c *Config) { c.ProjectID = "" },
			wantErr: "requires a project id",
		},
		{
			name:    "bigquery without credentials",
			mutate:  func(c *Config) { c.CredentialsFile = "" },
			wantErr: "requires a credentials file",
		},
		{
			name:    "sqlite without path",
			mutate:  func(c *Config) { c.Source = SourceSQLite },
			wantErr: "requires a database path",
		},
		{
			name: "sqlite file in test environment",
			mutate: func(c *Config) {
				c.Source = SourceSQLite
				c.Env = Test
				c.SQLitePath = "questions.db"
			},
			wantErr: "in-memory database",
		},
		{
			name:    "unknown source",
			mutate:  func(c *Config) { c.Source = "postgres" },
			wantErr: `unknown source "postgres"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("reports all problems together", func(t *testing.T) {
		cfg := valid
		cfg.Port = 0
		cfg.ProjectID = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "port 0 out of range")
		assert.Contains(t, err.Error(), "requires a project id")
	})
}

func TestParseFlags(t *testing.T) {
	t.Run("flags override file", func(t *testing.T) {
		path := writeConfig(t, `
port: 8080
source: sqlite
sqlite:
  path: from-file.db
`)
		cfg, err := ParseFlags("api", []string{
			"-config", path,
			"-port", "9090",
			"-sqlite-path", ":memory:",
			"-env", "test",
			"-rate-limit", "-1",
			"-log-level", "warn",
		})
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, SourceSQLite, cfg.Source)
		assert.Equal(t, ":memory:", cfg.SQLitePath)
		assert.Equal(t, Test, cfg.Env)
		assert.Equal(t, -1, cfg.RateLimit)
		assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	})

	t.Run("bigquery from flags", func(t *testing.T) {
		cfg, err := ParseFlags("api", []string{"-project", "datathon-2025", "-credentials", "sa.json"})
		require.NoError(t, err)

		assert.Equal(t, SourceBigQuery, cfg.Source)
		assert.Equal(t, "datathon-2025", cfg.ProjectID)
		assert.Equal(t, "sa.json", cfg.CredentialsFile)
		assert.Equal(t, 5000, cfg.Port)
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		_, err := ParseFlags("api", []string{"-source", "sqlite"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects bad log level flag", func(t *testing.T) {
		_, err := ParseFlags("api", []string{"-project", "p", "-log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("rejects unknown flags", func(t *testing.T) {
		_, err := ParseFlags("api", []string{"-verbose"})
		require.Error(t, err)
	})
}
