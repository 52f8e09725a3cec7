package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/speechprep/alphabet"
	"github.com/kbukum/speechprep/audio"
	"github.com/kbukum/speechprep/dataset"
	apperrors "github.com/kbukum/speechprep/errors"
	"github.com/kbukum/speechprep/logger"
	"github.com/kbukum/speechprep/observability"
	"github.com/kbukum/speechprep/pipeline"
	"github.com/kbukum/speechprep/process"
	"github.com/kbukum/speechprep/sample"
	"github.com/kbukum/speechprep/segment"
	"github.com/kbukum/speechprep/textnorm"
)

// Converter turns the source recording into a WAV file the slices are cut from.
type Converter interface {
	EnsureWav(ctx context.Context, src string) (string, error)
}

// Summary describes a finished import.
type Summary struct {
	RunID    string
	Segments int
	Counters sample.Counters
	Report   dataset.Report
	// CSVs maps every split to the file it was written to.
	CSVs map[dataset.Split]string
}

// Importer runs imports. Build one with New.
type Importer struct {
	cfg       Config
	log       *logger.Logger
	out       io.Writer
	extractor sample.Extractor
	frames    sample.FrameCounter
	converter Converter
	metrics   *observability.ImportMetrics
	tracer    trace.Tracer
}

// Option customises an Importer.
type Option func(*Importer)

// WithLogger sets the run logger.
func WithLogger(l *logger.Logger) Option {
	return func(im *Importer) { im.log = l }
}

// WithOutput sets where the report is printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(im *Importer) { im.out = w }
}

// WithExtractor replaces ffmpeg slice extraction.
func WithExtractor(e sample.Extractor) Option {
	return func(im *Importer) { im.extractor = e }
}

// WithFrameCounter replaces WAV header frame counting.
func WithFrameCounter(fc sample.FrameCounter) Option {
	return func(im *Importer) { im.frames = fc }
}

// WithConverter replaces ffmpeg source conversion.
func WithConverter(c Converter) Option {
	return func(im *Importer) { im.converter = c }
}

// WithTelemetry records metrics and spans through t.
func WithTelemetry(t *observability.Telemetry) Option {
	return func(im *Importer) {
		if t == nil {
			return
		}
		if m, err := observability.NewImportMetrics(t.Meter()); err == nil {
			im.metrics = m
		}
		im.tracer = t.Tracer()
	}
}

// New creates an Importer. cfg must have defaults applied and be valid.
func New(cfg Config, opts ...Option) *Importer {
	im := &Importer{
		cfg:     cfg,
		log:     logger.Nop(),
		out:     os.Stdout,
		metrics: observability.NopImportMetrics(),
		tracer:  noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.extractor == nil || im.converter == nil {
		ff := audio.NewFFmpeg(process.NewRunner(process.Config{
			Timeout: cfg.ToolTimeout,
			Retries: cfg.ToolRetries,
		}), cfg.FFmpegPath, im.log)
		if im.extractor == nil {
			im.extractor = ff
		}
		if im.converter == nil {
			im.converter = ff
		}
	}
	if im.frames == nil {
		im.frames = audio.WavFrames{}
	}
	return im
}

// Run imports one recording: it segments the transcript, processes every
// segment on cfg.Workers goroutines, then writes the train, dev and test
// CSVs and prints the report. Any fatal error cancels the remaining work.
func (im *Importer) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := im.log.WithComponent("importer").WithRunID(runID)
	ctx, span := im.tracer.Start(ctx, observability.SpanImport,
		trace.WithAttributes(attribute.String(observability.AttrRunID, runID)))

	summary, err := im.run(ctx, runID, log)
	if err != nil {
		log.Error("import failed", logger.Fields(logger.FieldError, err.Error()))
	}
	observability.EndSpan(span, err)
	return summary, err
}

func (im *Importer) run(ctx context.Context, runID string, log *logger.Logger) (*Summary, error) {
	cfg := im.cfg
	begin := time.Now()

	labels, err := im.labelFilter()
	if err != nil {
		return nil, err
	}

	source := im.sourceAudio(ctx, log)

	wavRoot := strings.TrimSuffix(cfg.XML, filepath.Ext(cfg.XML))
	if err := os.MkdirAll(wavRoot, 0o755); err != nil {
		return nil, apperrors.Internal(err).WithDetail("path", wavRoot)
	}

	rows, err := segment.ReadTranscript(cfg.XML)
	if err != nil {
		return nil, err
	}
	segs := segment.Build(rows, segment.Config{
		MaxDuration:    cfg.MaxSegmentSeconds,
		CloseTolerance: cfg.CloseTolerance,
		SourceAudio:    source,
		OutputDir:      wavRoot,
	})
	log.Info("transcript segmented", logger.Fields("rows", len(rows), "segments", len(segs), "workers", cfg.Workers))

	proc := sample.NewProcessor(
		sample.Config{SampleRate: cfg.SampleRate, MaxSeconds: cfg.MaxSampleSeconds},
		im.extractor, im.frames, labels,
		sample.WithLogger(log.WithComponent("sample")),
		sample.WithMetrics(im.metrics),
		sample.WithTracer(im.tracer),
	)

	done := 0
	results, err := pipeline.Collect(ctx, pipeline.Tap(
		pipeline.Parallel(pipeline.FromSlice(segs), cfg.Workers, proc.Process),
		func(_ context.Context, _ sample.Result) error {
			done++
			if done%cfg.ProgressEvery == 0 || done == len(segs) {
				log.Info("progress", logger.Fields("done", done, "total", len(segs)))
			}
			return nil
		},
	))
	if err != nil {
		return nil, err
	}

	// Workers finish out of order; the split must not depend on scheduling.
	sort.Slice(results, func(i, j int) bool { return results[i].SegmentID < results[j].SegmentID })

	var counters sample.Counters
	samples := make([]sample.Sample, 0, len(results))
	for _, r := range results {
		counters = counters.Merge(r.Counters)
		if r.Sample != nil {
			samples = append(samples, *r.Sample)
		}
	}

	parts := dataset.Partition(samples)
	csvs, err := dataset.WritePartitions(wavRoot, cfg.XML, parts)
	if err != nil {
		return nil, err
	}
	if err := dataset.CheckInvariants(counters, len(segs), parts.Len()); err != nil {
		return nil, err
	}

	report := dataset.Report{Counters: counters, SampleRate: cfg.SampleRate, MaxSeconds: cfg.MaxSampleSeconds}
	if _, err := report.WriteTo(im.out); err != nil {
		return nil, apperrors.Internal(err)
	}
	fields := report.Fields()
	for split, path := range csvs {
		fields["csv_"+string(split)] = path
	}
	fields[logger.FieldDuration] = time.Since(begin).Milliseconds()
	log.Info("import finished", fields)

	return &Summary{
		RunID:    runID,
		Segments: len(segs),
		Counters: counters,
		Report:   report,
		CSVs:     csvs,
	}, nil
}

// labelFilter assembles the label chain from the configuration.
func (im *Importer) labelFilter() (*sample.LabelFilter, error) {
	cfg := im.cfg
	norm := textnorm.Default()
	if cfg.NormalizationTable != "" {
		table, err := textnorm.LoadTable(cfg.NormalizationTable)
		if err != nil {
			return nil, err
		}
		norm = textnorm.New(table)
	}
	validate, err := norm.Validator(cfg.ValidateLocale)
	if err != nil {
		return nil, err
	}

	opts := []sample.LabelOption{
		sample.WithASCIIFolding(cfg.Normalize),
		sample.WithValidator(validate),
	}
	if cfg.FilterAlphabet != "" {
		a, err := alphabet.Load(cfg.FilterAlphabet)
		if err != nil {
			return nil, fmt.Errorf("loading filter alphabet: %w", err)
		}
		opts = append(opts, sample.WithAlphabet(a))
	}
	return sample.NewLabelFilter(norm, opts...), nil
}

// sourceAudio returns the WAV file to cut slices from. A failed conversion
// is only logged: every extraction from the missing file then counts as
// failed.
func (im *Importer) sourceAudio(ctx context.Context, log *logger.Logger) string {
	src := im.cfg.Audio
	if strings.EqualFold(filepath.Ext(src), ".wav") {
		return src
	}
	wav, err := im.converter.EnsureWav(ctx, src)
	if err != nil {
		log.Warn("source conversion failed", logger.Fields(logger.FieldPath, src, logger.FieldError, err.Error()))
	}
	if wav == "" {
		wav = audio.WavPath(src)
	}
	return wav
}
