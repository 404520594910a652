// Package metrics exposes cache instrumentation through OpenTelemetry
// instruments exported in Prometheus text format.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "lrucache"

// Provider owns a meter provider whose only reader is a Prometheus
// exporter registered on a private registry.
type Provider struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider
}

// NewProvider returns a Provider with an empty registry.
func NewProvider() (*Provider, error) {
	reg := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	return &Provider{
		registry: reg,
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
	}, nil
}

// MeterProvider returns the underlying provider, e.g. for otel.SetMeterProvider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	return p.provider
}

func (p *Provider) Meter() metric.Meter {
	return p.provider.Meter(meterName)
}

// Handler serves the registry in the Prometheus exposition format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *Provider) Shutdown(ctx context.Context) error {
	return p.provider.Shutdown(ctx)
}

// Recorder counts cache events. It satisfies cache.Recorder.
type Recorder struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	sets      metric.Int64Counter
	evictions metric.Int64Counter
	attrs     metric.MeasurementOption
}

// NewRecorder creates the event counters on meter, labelled with the
// given cache name.
func NewRecorder(meter metric.Meter, cacheName string) (*Recorder, error) {
	r := &Recorder{
		attrs: metric.WithAttributes(attribute.String("cache", cacheName)),
	}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{dst: &r.hits, name: "lrucache.hits", desc: "Lookups that found the key"},
		{dst: &r.misses, name: "lrucache.misses", desc: "Lookups that did not find the key"},
		{dst: &r.sets, name: "lrucache.sets", desc: "Insertions and overwrites"},
		{dst: &r.evictions, name: "lrucache.evictions", desc: "Entries evicted to stay within capacity"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("create counter %s: %w", c.name, err)
		}
		*c.dst = counter
	}

	return r, nil
}

func (r *Recorder) RecordHit()      { r.hits.Add(context.Background(), 1, r.attrs) }
func (r *Recorder) RecordMiss()     { r.misses.Add(context.Background(), 1, r.attrs) }
func (r *Recorder) RecordSet()      { r.sets.Add(context.Background(), 1, r.attrs) }
func (r *Recorder) RecordEviction() { r.evictions.Add(context.Background(), 1, r.attrs) }

// RegisterSize reports the current entry count and the capacity as
// observable gauges, read on every collection.
func RegisterSize(meter metric.Meter, cacheName string, size func() int, capacity int) error {
	attrs := metric.WithAttributes(attribute.String("cache", cacheName))

	_, err := meter.Int64ObservableGauge("lrucache.entries",
		metric.WithDescription("Entries currently cached"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(size()), attrs)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("create entries gauge: %w", err)
	}

	_, err = meter.Int64ObservableGauge("lrucache.capacity",
		metric.WithDescription("Maximum number of cached entries"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(capacity), attrs)
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("create capacity gauge: %w", err)
	}

	return nil
}
