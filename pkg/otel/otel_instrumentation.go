// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation is handed to the instrumented decorators. A nil
// Instrumentation, or one without meter and tracer, leaves them disabled.
type Instrumentation struct {
	Meter  metric.Meter
	Tracer trace.Tracer
}

func (i *Instrumentation) IsEnabled() bool {
	return i != nil && (i.Meter != nil || i.Tracer != nil)
}

type InstrumentationProvider interface {
	NewInstrumentation(name string) *Instrumentation
	Close() error
}

// NewInstrumentationProvider validates the configuration and returns a noop
// provider when neither metrics nor traces are configured.
func NewInstrumentationProvider(cfg *Config) (InstrumentationProvider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrumentation config: %w", err)
	}
	if !cfg.IsEnabled() {
		return noopProvider{}, nil
	}
	return NewProvider(cfg)
}

type noopProvider struct{}

func (noopProvider) NewInstrumentation(string) *Instrumentation { return nil }

func (noopProvider) Close() error { return nil }
