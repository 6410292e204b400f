// SPDX-License-Identifier: Apache-2.0

package instrumentation

import (
	"context"
	"fmt"
	"time"

	"github.com/xataio/clinnorm/pkg/normalizer"
	"github.com/xataio/clinnorm/pkg/otel"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Normalizer struct {
	inner   normalizer.RecordNormalizer
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *metrics
}

type metrics struct {
	normalizeLatency metric.Int64Histogram
	unmappedValues   metric.Int64Counter
}

const (
	attributeKey      = "normalized_attribute"
	processingTypeKey = "processing_type"
	sampleKey         = "sample_id"

	clinicalSampleIDAttribute = "SAMPLE_ID"
)

func NewNormalizer(n normalizer.RecordNormalizer, instrumentation *otel.Instrumentation) (normalizer.RecordNormalizer, error) {
	if !instrumentation.IsEnabled() {
		return n, nil
	}

	i := &Normalizer{
		inner:   n,
		tracer:  instrumentation.Tracer,
		meter:   instrumentation.Meter,
		metrics: &metrics{},
	}

	if err := i.initMetrics(); err != nil {
		return nil, fmt.Errorf("initialising normalizer metrics: %w", err)
	}

	return i, nil
}

func (i *Normalizer) Normalize(ctx context.Context, sample map[string]string) (record *normalizer.Record, err error) {
	ctx, span := otel.StartSpan(ctx, i.tracer, "normalizer.Normalize",
		attribute.String(sampleKey, sample[clinicalSampleIDAttribute]))
	defer func() {
		otel.CloseSpan(span, err)
	}()

	if i.meter != nil {
		startTime := time.Now()
		defer func() {
			i.metrics.normalizeLatency.Record(ctx, time.Since(startTime).Milliseconds())
			if record == nil {
				return
			}
			for _, unmapped := range record.Unmapped {
				i.metrics.unmappedValues.Add(ctx, 1, metric.WithAttributes(
					attribute.String(attributeKey, unmapped.Attribute),
					attribute.String(processingTypeKey, string(unmapped.ProcessingType)),
				))
			}
		}()
	}

	return i.inner.Normalize(ctx, sample)
}

func (i *Normalizer) initMetrics() error {
	if i.meter == nil {
		return nil
	}

	var err error
	i.metrics.normalizeLatency, err = i.meter.Int64Histogram("clinnorm.normalizer.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("Distribution of the time taken to normalize a sample"))
	if err != nil {
		return err
	}

	i.metrics.unmappedValues, err = i.meter.Int64Counter("clinnorm.normalizer.unmapped_values",
		metric.WithUnit("values"),
		metric.WithDescription("Count of original values without a mapping rule"))
	if err != nil {
		return err
	}

	return nil
}
