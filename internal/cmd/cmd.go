// Package cmd assembles the lrucache command tree.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"lrucache/internal/config"
)

// NewRootCommand returns the root command with the serve, demo and
// bench subcommands registered. The default slog logger is replaced
// before any subcommand runs.
func NewRootCommand(conf *config.Config, version string) (*cobra.Command, error) {
	c := &cobra.Command{
		Use:           "lrucache",
		Short:         "In-process LRU cache with an HTTP front end, demo and workload bench",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := newLogger(cmd.ErrOrStderr(), conf.LogLevel(), conf.LogFormat())
			if err != nil {
				return err
			}
			slog.SetDefault(log)
			if path := conf.ConfigFileUsed(); path != "" {
				slog.Debug("loaded config file", "path", path)
			}
			return nil
		},
	}

	// Cache options are shared by serve and bench, so they are bound once.
	if err := conf.BindFlags(c.PersistentFlags(), config.CacheOptions); err != nil {
		return nil, err
	}
	if err := conf.BindFlags(c.PersistentFlags(), config.LogOptions); err != nil {
		return nil, err
	}

	serveCmd, err := NewServeCommand(conf)
	if err != nil {
		return nil, err
	}
	demoCmd := NewDemoCommand()
	benchCmd, err := NewBenchCommand(conf)
	if err != nil {
		return nil, err
	}

	c.AddCommand(serveCmd, demoCmd, benchCmd)

	return c, nil
}
