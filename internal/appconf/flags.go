package appconf

import (
	"flag"
	"fmt"
	"strings"
)

// ParseFlags builds a Config from command-line arguments. Defaults come from
// Default, then from the file named by -config if given; flags set
// explicitly on the command line win over both.
func ParseFlags(name string, args []string) (Config, error) {
	var (
		configPath string
		env        string
		source     string
		logLevel   string
		flags      Config
	)

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.IntVar(&flags.Port, "port", 0, "API server port")
	fs.StringVar(&env, "env", "", "Environment (development|test|production)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	fs.StringVar(&source, "source", "", "Tag count source (bigquery|sqlite)")
	fs.StringVar(&flags.ProjectID, "project", "", "Google Cloud project billed for BigQuery jobs")
	fs.StringVar(&flags.CredentialsFile, "credentials", "", "Path to a service account key file")
	fs.StringVar(&flags.SQLitePath, "sqlite-path", "", "Path to a local questions database")
	fs.IntVar(&flags.RateLimit, "rate-limit", 0, "Trend requests per second, 0 or less disables limiting")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if configPath != "" {
		if err := LoadFile(configPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "port":
			cfg.Port = flags.Port
		case "env":
			cfg.Env = EnvFlagToEnvironment(env)
		case "log-level":
			level, parseErr := ParseLogLevel(logLevel)
			if parseErr != nil {
				err = parseErr
				return
			}
			cfg.LogLevel = level
		case "source":
			cfg.Source = SourceKind(strings.ToLower(source))
		case "project":
			cfg.ProjectID = flags.ProjectID
		case "credentials":
			cfg.CredentialsFile = flags.CredentialsFile
		case "sqlite-path":
			cfg.SQLitePath = flags.SQLitePath
		case "rate-limit":
			cfg.RateLimit = flags.RateLimit
		}
	})
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
