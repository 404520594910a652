package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"lrucache/internal/cache"
	"lrucache/internal/config"
	"lrucache/internal/metrics"
	"lrucache/internal/transport"
	"lrucache/internal/transport/http"
)

// cacheName labels the served cache in metrics.
const cacheName = "http"

func NewServeCommand(conf *config.Config) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Serve a shared LRU cache over HTTP",
		Example: "lrucache serve --address=:8380 --capacity=4096",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), conf)
		},
	}

	if err := conf.BindFlags(cmd.Flags(), config.ServerOptions); err != nil {
		return nil, err
	}

	return cmd, nil
}

func runServe(ctx context.Context, conf *config.Config) error {
	provider, err := metrics.NewProvider()
	if err != nil {
		return err
	}
	otel.SetMeterProvider(provider.MeterProvider())

	rec, err := metrics.NewRecorder(provider.Meter(), cacheName)
	if err != nil {
		return err
	}

	c, err := cache.NewSynced[string, []byte](cache.SyncedConfig{
		Capacity:       conf.CacheCapacity(),
		ReportInterval: conf.CacheReportInterval(),
		Recorder:       rec,
	})
	if err != nil {
		return fmt.Errorf("failed to create cache: %w", err)
	}
	defer c.Close()

	if err := metrics.RegisterSize(provider.Meter(), cacheName, c.Len, c.Cap()); err != nil {
		return err
	}

	srv, err := http.NewServer(
		http.WithAddress(conf.ServerAddress()),
		http.WithAllowedOrigins(conf.ServerAllowedOrigins()),
		http.WithMount(http.NewHandler(c, provider.Handler(), conf.ServerMaxValueBytes()).Mount),
	)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	slog.Info("cache ready", "capacity", c.Cap(), "report_interval", conf.CacheReportInterval())

	return transport.Serve(ctx, srv, &metricsListener{provider: provider})
}

// metricsListener flushes and shuts down the meter provider as part of
// the managed lifecycle.
type metricsListener struct {
	provider *metrics.Provider
}

func (l *metricsListener) Start(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (l *metricsListener) Stop(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}
