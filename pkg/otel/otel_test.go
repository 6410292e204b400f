// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestNewInstrumentationProvider_disabled(t *testing.T) {
	t.Parallel()

	provider, err := NewInstrumentationProvider(&Config{})
	require.NoError(t, err)
	require.Nil(t, provider.NewInstrumentation("normalizer"))
	require.False(t, provider.NewInstrumentation("normalizer").IsEnabled())
	require.NoError(t, provider.Close())
}

func TestNewInstrumentationProvider_invalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewInstrumentationProvider(&Config{
		Traces: &TracesConfig{Endpoint: "localhost:4317", SampleRatio: 2},
	})
	require.ErrorIs(t, err, ErrInvalidSampleRatio)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  *Config
		wantErr error
	}{
		{
			name:    "nil config",
			config:  nil,
			wantErr: nil,
		},
		{
			name: "metrics and traces",
			config: &Config{
				Metrics: &MetricsConfig{Endpoint: "localhost:4317"},
				Traces:  &TracesConfig{Endpoint: "localhost:4317", SampleRatio: 1},
			},
			wantErr: nil,
		},
		{
			name:    "missing metrics endpoint",
			config:  &Config{Metrics: &MetricsConfig{}},
			wantErr: ErrMissingEndpoint,
		},
		{
			name:    "missing traces endpoint",
			config:  &Config{Traces: &TracesConfig{SampleRatio: 0.5}},
			wantErr: ErrMissingEndpoint,
		},
		{
			name:    "negative sample ratio",
			config:  &Config{Traces: &TracesConfig{Endpoint: "localhost:4317", SampleRatio: -0.1}},
			wantErr: ErrInvalidSampleRatio,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, tc.config.Validate(), tc.wantErr)
		})
	}
}

func TestMetricsConfig_collectionInterval(t *testing.T) {
	t.Parallel()

	require.Equal(t, defaultCollectionInterval, (&MetricsConfig{}).collectionInterval())
	require.Equal(t, 5*time.Second, (&MetricsConfig{CollectionInterval: 5 * time.Second}).collectionInterval())
}

func TestStartSpan(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	gotCtx, span := StartSpan(ctx, nil, "noop")
	require.Equal(t, ctx, gotCtx)
	require.Nil(t, span)
	// closing a nil span is a noop
	CloseSpan(span, errors.New("oh noes"))

	_, span = StartSpan(ctx, tracenoop.NewTracerProvider().Tracer("test"), "span", attribute.String("sample_id", "S1"))
	require.NotNil(t, span)
	CloseSpan(span, nil)
}

func TestDeltaSelector(t *testing.T) {
	t.Parallel()

	require.Equal(t, metricdata.DeltaTemporality, deltaSelector(sdkmetric.InstrumentKindCounter))
	require.Equal(t, metricdata.DeltaTemporality, deltaSelector(sdkmetric.InstrumentKindHistogram))
	require.Equal(t, metricdata.CumulativeTemporality, deltaSelector(sdkmetric.InstrumentKindUpDownCounter))
}
