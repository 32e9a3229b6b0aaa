// Package config loads runtime settings from an optional .env file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jwulff/artstudio-go/internal/assistant"
	"github.com/jwulff/artstudio-go/internal/history"
)

// Defaults.
const (
	DefaultListenAddr = ":3002"
	DefaultLogLevel   = "info"
)

// Environment variable names.
const (
	EnvListenAddr     = "LISTEN_ADDR"
	EnvLogLevel       = "LOG_LEVEL"
	EnvHistoryLimit   = "HISTORY_LIMIT"
	EnvDataSourceName = "DATA_SOURCE_NAME"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvOpenAIBaseURL  = "OPENAI_BASE_URL"
	EnvOpenAIModel    = "OPENAI_MODEL"
)

// Config holds the settings shared by the CLI subcommands.
type Config struct {
	ListenAddr     string
	LogLevel       string
	HistoryLimit   int
	DataSourceName string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:    DefaultListenAddr,
		LogLevel:      DefaultLogLevel,
		HistoryLimit:  history.DefaultLimit,
		OpenAIBaseURL: assistant.DefaultBaseURL,
		OpenAIModel:   assistant.DefaultModel,
	}
}

// Load reads .env (when present), then the environment, then parses args
// as flags. args excludes the program and subcommand names; the arguments
// left after the flags are returned.
func Load(args []string) (Config, []string, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found")
	}
	cfg := FromEnv(os.Getenv)
	rest, err := cfg.parseFlags(args)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, rest, nil
}

// FromEnv builds a configuration from an environment lookup function.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()
	if v := getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv(EnvHistoryLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logrus.WithField("value", v).Warn("Invalid HISTORY_LIMIT, using default")
		} else {
			cfg.HistoryLimit = n
		}
	}
	cfg.DataSourceName = getenv(EnvDataSourceName)
	cfg.OpenAIAPIKey = getenv(EnvOpenAIAPIKey)
	if v := getenv(EnvOpenAIBaseURL); v != "" {
		cfg.OpenAIBaseURL = v
	}
	if v := getenv(EnvOpenAIModel); v != "" {
		cfg.OpenAIModel = v
	}
	return cfg
}

func (c *Config) parseFlags(args []string) ([]string, error) {
	fs := flag.NewFlagSet("artstudio", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&c.ListenAddr, "listen", c.ListenAddr, "The address to listen on.")
	fs.StringVar(&c.LogLevel, "loglevel", c.LogLevel, "The log level (debug, info, warn, error).")
	fs.IntVar(&c.HistoryLimit, "history", c.HistoryLimit, "Undo snapshots kept per layer.")
	fs.StringVar(&c.DataSourceName, "db", c.DataSourceName, "SQLite database path (empty for in-memory).")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.HistoryLimit < 1 {
		c.HistoryLimit = history.DefaultLimit
	}
	return fs.Args(), nil
}

// SetupLogging applies the configured level to the standard logrus logger.
// An unknown level falls back to info.
func (c Config) SetupLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logrus.WithField("level", c.LogLevel).Warn("Invalid log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
