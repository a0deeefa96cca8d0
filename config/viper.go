package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyStorageBackend = "storage.backend"
	keyStorageFormat  = "storage.json_format"
	keyStorageDir     = "storage.dir"
	keyListLimit      = "list.limit"
)

// WithViperConfig returns an Option that loads configuration from the YAML
// config file, writing a default file on first run.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		v.SetDefault(keyStorageBackend, c.Storage.Backend)
		v.SetDefault(keyStorageFormat, formatName(c.Storage.Pretty))
		v.SetDefault(keyStorageDir, c.Storage.Dir)
		v.SetDefault(keyListLimit, c.List.Limit)

		err := v.ReadInConfig()
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return errReadConfig.Wrap(err)
			}

			if err := v.WriteConfig(); err != nil {
				return errWriteConfig.Wrap(err)
			}
		}

		return loadViperConfig(v, c)
	}
}

// loadViperConfig applies values from Viper to the config.
func loadViperConfig(v *viper.Viper, c *Config) error {
	c.Storage.Backend = v.GetString(keyStorageBackend)
	c.Storage.Dir = v.GetString(keyStorageDir)
	c.List.Limit = v.GetUint(keyListLimit)

	pretty, err := parseFormat(v.GetString(keyStorageFormat))
	if err != nil {
		return err
	}

	c.Storage.Pretty = pretty

	return nil
}

func formatName(pretty bool) string {
	if pretty {
		return "pretty"
	}

	return "compact"
}

func parseFormat(s string) (pretty bool, err error) {
	switch s {
	case "pretty":
		return true, nil
	case "compact":
		return false, nil
	default:
		return false, errUnknownFormat.Fmt(s)
	}
}
