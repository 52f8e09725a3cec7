package observability

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanImport  = "speechprep.import"
	SpanSegment = "speechprep.segment"
)

// Attribute keys.
const (
	AttrSegmentID = "segment.id"
	AttrRunID     = "run.id"
	AttrWavFile   = "wav.file"
)

// EndSpan records err on span when non-nil and ends it.
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
