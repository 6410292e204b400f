// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Provider exports the metrics and traces of a clinnorm run over OTLP/gRPC.
// Signals without configuration fall back to noop providers.
type Provider struct {
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	shutdownFns    []func(context.Context) error
}

const (
	serviceName     = "clinnorm"
	shutdownTimeout = 5 * time.Second
)

func NewProvider(cfg *Config) (*Provider, error) {
	ctx := context.Background()
	res := newResource()
	p := &Provider{
		meterProvider:  metricnoop.NewMeterProvider(),
		tracerProvider: tracenoop.NewTracerProvider(),
	}

	if cfg.Metrics != nil {
		mp, err := newMeterProvider(ctx, cfg.Metrics, res)
		if err != nil {
			return nil, fmt.Errorf("initialising meter provider: %w", err)
		}
		p.meterProvider = mp
		p.shutdownFns = append(p.shutdownFns, mp.Shutdown)

		// go runtime metrics (memory, goroutines, gc) for the duration of the run
		if err := runtime.Start(runtime.WithMeterProvider(mp)); err != nil {
			return nil, fmt.Errorf("starting runtime instrumentation: %w", err)
		}
	}

	if cfg.Traces != nil {
		tp, err := newTracerProvider(ctx, cfg.Traces, res)
		if err != nil {
			return nil, fmt.Errorf("initialising tracer provider: %w", err)
		}
		p.tracerProvider = tp
		p.shutdownFns = append(p.shutdownFns, tp.Shutdown)
	}

	otel.SetMeterProvider(p.meterProvider)
	otel.SetTracerProvider(p.tracerProvider)
	return p, nil
}

func (p *Provider) NewInstrumentation(name string) *Instrumentation {
	return &Instrumentation{
		Meter:  p.meterProvider.Meter(name),
		Tracer: p.tracerProvider.Tracer(name),
	}
}

// Close flushes and shuts down the exporters, waiting up to five seconds.
func (p *Provider) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	for _, shutdownFn := range p.shutdownFns {
		errs = append(errs, shutdownFn(ctx))
	}
	return errors.Join(errs...)
}

func newMeterProvider(ctx context.Context, cfg *MetricsConfig, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithTemporalitySelector(deltaSelector),
		otlpmetricgrpc.WithInsecure(),
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.collectionInterval()))
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader)), nil
}

func newTracerProvider(ctx context.Context, cfg *TracesConfig, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithInsecure(),
		otlptracegrpc.WithEndpoint(cfg.Endpoint))
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio)))), nil
}

func newResource() *resource.Resource {
	return resource.NewSchemaless(
		semconv.ServiceNameKey.String(serviceName),
		semconv.ServiceVersionKey.String(version()),
	)
}

// Runs are short lived, so counters and histograms are exported as deltas of
// each collection interval. Up/down counters stay cumulative.
func deltaSelector(kind sdkmetric.InstrumentKind) metricdata.Temporality {
	switch kind {
	case sdkmetric.InstrumentKindUpDownCounter,
		sdkmetric.InstrumentKindObservableUpDownCounter:
		return metricdata.CumulativeTemporality
	default:
		return metricdata.DeltaTemporality
	}
}
