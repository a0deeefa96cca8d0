// Package config handles the timebox configuration: XDG paths, the YAML
// config file, command-line overrides, and file logging.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Storage StorageConfig
		List    ListConfig
		System  SystemConfig
	}

	// StorageConfig selects the persistence backend and its options.
	StorageConfig struct {
		// Backend is "json" or "bolt".
		Backend string
		// Pretty controls the JSON serialization density.
		Pretty bool
		// Dir is the directory holding the persisted state.
		Dir string
	}

	// ListConfig holds listing defaults.
	ListConfig struct {
		Limit uint
	}

	// SystemConfig holds resolved file locations.
	SystemConfig struct {
		ConfigPath string
		LogPath    string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v1.0.2"

const (
	BackendJSON = "json"
	BackendBolt = "bolt"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New builds a Config by applying the given options in order.
func New(opts ...Option) (*Config, error) {
	InitializePaths()

	c := &Config{
		Storage: StorageConfig{
			Backend: BackendJSON,
			Pretty:  true,
			Dir:     DataDir(),
		},
		List: ListConfig{
			Limit: 25,
		},
		System: SystemConfig{
			ConfigPath: ConfigFilePath(),
			LogPath:    LogFilePath(),
		},
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Get returns the configuration for a CLI invocation: the config file
// overlaid with command-line flags. Errors are reported and terminate the
// process.
func Get(ctx *cli.Context) *Config {
	c, err := New(
		WithViperConfig(ConfigFilePath()),
		WithCLIConfig(ctx),
	)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return c
}

// StateFile is the JSON state file inside the configured storage directory.
func (c *Config) StateFile() string {
	return filepath.Join(c.Storage.Dir, stateFileName)
}

// DBFile is the Bolt database file inside the configured storage directory.
func (c *Config) DBFile() string {
	return filepath.Join(c.Storage.Dir, dbFileName)
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Storage.Backend != BackendJSON && c.Storage.Backend != BackendBolt {
		return errUnknownBackend.Fmt(c.Storage.Backend)
	}

	if c.List.Limit == 0 {
		return errInvalidListLimit
	}

	return nil
}

// InitLogger directs slog output to a rotating log file.
func InitLogger(logPath string) {
	w := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    1, // megabytes
		MaxBackups: 3,
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, nil)))
}
