package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric names.
const (
	MetricSamples        = "speechprep.samples"
	MetricAudioSeconds   = "speechprep.audio.duration"
	MetricSegmentLatency = "speechprep.segment.processing"
)

// AttrOutcome is the attribute carrying the rejection category or "imported".
const AttrOutcome = "outcome"

// ImportMetrics holds the instruments one import run records into.
type ImportMetrics struct {
	samples      metric.Int64Counter
	audioSeconds metric.Float64Counter
	latency      metric.Float64Histogram
}

// NewImportMetrics creates the instruments on meter.
func NewImportMetrics(meter metric.Meter) (*ImportMetrics, error) {
	samples, err := meter.Int64Counter(MetricSamples,
		metric.WithDescription("Processed segments by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSamples, err)
	}

	audioSeconds, err := meter.Float64Counter(MetricAudioSeconds,
		metric.WithDescription("Seconds of audio measured across all processed segments"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricAudioSeconds, err)
	}

	latency, err := meter.Float64Histogram(MetricSegmentLatency,
		metric.WithDescription("Wall time spent extracting and validating one segment"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricSegmentLatency, err)
	}

	return &ImportMetrics{samples: samples, audioSeconds: audioSeconds, latency: latency}, nil
}

// NopImportMetrics returns instruments that record nothing.
func NopImportMetrics() *ImportMetrics {
	m, _ := NewImportMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	return m
}

// RecordSample records one processed segment.
func (m *ImportMetrics) RecordSample(ctx context.Context, outcome string, audioSeconds float64, took time.Duration) {
	attrs := metric.WithAttributes(attribute.String(AttrOutcome, outcome))
	m.samples.Add(ctx, 1, attrs)
	if audioSeconds > 0 {
		m.audioSeconds.Add(ctx, audioSeconds)
	}
	m.latency.Record(ctx, took.Seconds(), attrs)
}
