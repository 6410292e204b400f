// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"errors"
	"time"
)

// Config enables the OTLP exporters. A nil Metrics or Traces section leaves
// the corresponding signal disabled.
type Config struct {
	Metrics *MetricsConfig
	Traces  *TracesConfig
}

type MetricsConfig struct {
	Endpoint string
	// CollectionInterval defaults to 60s.
	CollectionInterval time.Duration
}

type TracesConfig struct {
	Endpoint string
	// SampleRatio is the fraction of normalized samples traced, between 0
	// and 1.
	SampleRatio float64
}

const defaultCollectionInterval = 60 * time.Second

var (
	ErrInvalidSampleRatio = errors.New("sample_ratio must be between 0.0 and 1.0")
	ErrMissingEndpoint    = errors.New("instrumentation endpoint is required")
)

func (c *Config) IsEnabled() bool {
	return c != nil && (c.Metrics != nil || c.Traces != nil)
}

func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Metrics != nil && c.Metrics.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if c.Traces != nil {
		if c.Traces.Endpoint == "" {
			return ErrMissingEndpoint
		}
		if c.Traces.SampleRatio < 0 || c.Traces.SampleRatio > 1 {
			return ErrInvalidSampleRatio
		}
	}
	return nil
}

func (c *MetricsConfig) collectionInterval() time.Duration {
	if c.CollectionInterval > 0 {
		return c.CollectionInterval
	}
	return defaultCollectionInterval
}
