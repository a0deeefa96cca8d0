package config

import (
	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Dir        string
	Backend    string
	JSONFormat string
}

// WithCLIConfig returns an Option that overlays configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Dir:        ctx.String("dir"),
			Backend:    ctx.String("backend"),
			JSONFormat: ctx.String("json-format"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	if opts.Dir != "" {
		c.Storage.Dir = opts.Dir
	}

	if opts.Backend != "" {
		c.Storage.Backend = opts.Backend
	}

	if opts.JSONFormat != "" {
		pretty, err := parseFormat(opts.JSONFormat)
		if err != nil {
			return err
		}

		c.Storage.Pretty = pretty
	}

	return nil
}
