package sample

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/speechprep/logger"
	"github.com/kbukum/speechprep/observability"
	"github.com/kbukum/speechprep/segment"
)

// Default audio settings.
const (
	DefaultSampleRate = 16000
	DefaultMaxSeconds = 10.0
)

// Extractor copies [start, start+duration) of src into dst.
type Extractor interface {
	Extract(ctx context.Context, src, dst string, start, duration float64) error
}

// FrameCounter returns the number of sample frames in an audio file.
type FrameCounter interface {
	Frames(ctx context.Context, path string) (int64, error)
}

// Sample is an accepted segment, ready for a dataset CSV.
type Sample struct {
	WavFilename string
	WavFilesize int64
	Transcript  string
}

// Result is the outcome of processing one segment.
type Result struct {
	SegmentID int
	Outcome   Outcome
	Counters  Counters
	// Sample is set only when Outcome is OutcomeImported.
	Sample *Sample
}

// Config holds the acoustic limits.
type Config struct {
	SampleRate int
	// MaxSeconds rejects longer slices as too long.
	MaxSeconds float64
}

// Processor extracts, measures and validates segments. It keeps no state
// between calls and is safe for concurrent use.
type Processor struct {
	cfg       Config
	extractor Extractor
	frames    FrameCounter
	labels    *LabelFilter
	log       *logger.Logger
	metrics   *observability.ImportMetrics
	tracer    trace.Tracer
}

// Option customises a Processor.
type Option func(*Processor)

// WithLogger sets the logger rejections are reported to.
func WithLogger(l *logger.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// WithMetrics records every outcome into m.
func WithMetrics(m *observability.ImportMetrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithTracer opens a span per segment.
func WithTracer(t trace.Tracer) Option {
	return func(p *Processor) { p.tracer = t }
}

// NewProcessor creates a Processor.
func NewProcessor(cfg Config, ex Extractor, fc FrameCounter, labels *LabelFilter, opts ...Option) *Processor {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.MaxSeconds <= 0 {
		cfg.MaxSeconds = DefaultMaxSeconds
	}
	if labels == nil {
		labels = NewLabelFilter(nil)
	}
	p := &Processor{
		cfg:       cfg,
		extractor: ex,
		frames:    fc,
		labels:    labels,
		log:       logger.Nop(),
		metrics:   observability.NopImportMetrics(),
		tracer:    noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SliceName names the slice of segment id cut from src: "talk.wav" and 7
// give "talk_000007.wav".
func SliceName(src string, id int) string {
	base := filepath.Base(src)
	suffix := fmt.Sprintf("_%06d.wav", id)
	if !strings.Contains(base, ".wav") {
		return base + suffix
	}
	return strings.ReplaceAll(base, ".wav", suffix)
}

// Process handles one segment. Per-segment problems (tool failures, bad
// labels, bad durations) are reported in the Result; the error is reserved
// for failures that must stop the whole import.
func (p *Processor) Process(ctx context.Context, seg segment.Segment) (Result, error) {
	begin := time.Now()
	ctx, span := p.tracer.Start(ctx, observability.SpanSegment,
		trace.WithAttributes(attribute.Int(observability.AttrSegmentID, seg.ID)))
	log := p.log.WithSegment(seg.ID)

	label, labelOK, err := p.labels.Apply(seg.Text)
	if err != nil {
		log.Error("label normalization failed", logger.Fields(logger.FieldError, err.Error()))
		observability.EndSpan(span, err)
		return Result{}, fmt.Errorf("segment %d: %w", seg.ID, err)
	}

	dst := filepath.Join(seg.OutputDir, SliceName(seg.SourceAudio, seg.ID))
	size, frames, err := p.measure(ctx, seg, dst)
	if ctx.Err() != nil {
		observability.EndSpan(span, ctx.Err())
		return Result{}, ctx.Err()
	}

	outcome := p.judge(err, labelOK, label, frames)
	res := Result{SegmentID: seg.ID, Outcome: outcome, Counters: Count(outcome, frames)}
	if outcome == OutcomeImported {
		res.Sample = &Sample{WavFilename: filepath.Base(dst), WavFilesize: size, Transcript: label}
	} else {
		fields := logger.Fields(logger.FieldReason, string(outcome), logger.FieldPath, dst)
		if err != nil {
			fields[logger.FieldError] = err.Error()
		}
		log.Debug("segment skipped", fields)
	}

	seconds := float64(frames) / float64(p.cfg.SampleRate)
	p.metrics.RecordSample(ctx, string(outcome), seconds, time.Since(begin))
	observability.EndSpan(span, nil,
		attribute.String(observability.AttrOutcome, string(outcome)),
		attribute.String(observability.AttrWavFile, filepath.Base(dst)),
	)
	return res, nil
}

// measure extracts the slice unless it exists, then reads its size and
// frame count. Any failure leaves frames at 0.
func (p *Processor) measure(ctx context.Context, seg segment.Segment, dst string) (size, frames int64, err error) {
	if _, statErr := os.Stat(dst); statErr != nil {
		if err := p.extractor.Extract(ctx, seg.SourceAudio, dst, seg.Start, seg.Duration); err != nil {
			return 0, 0, err
		}
	}
	info, err := os.Stat(dst)
	if err != nil {
		return 0, 0, err
	}
	n, err := p.frames.Frames(ctx, dst)
	if err != nil {
		return 0, 0, err
	}
	return info.Size(), n, nil
}

// judge applies the rejection ladder; the first match wins.
func (p *Processor) judge(measureErr error, labelOK bool, label string, frames int64) Outcome {
	secs := float64(frames) / float64(p.cfg.SampleRate)
	switch {
	case measureErr != nil:
		return OutcomeFailed
	case !labelOK:
		return OutcomeInvalidLabel
	// One 20ms CTC step per transcript character at least.
	case int64(secs*1000/10/2) < int64(utf8.RuneCountInString(label)):
		return OutcomeTooShort
	case secs > p.cfg.MaxSeconds:
		return OutcomeTooLong
	default:
		return OutcomeImported
	}
}
