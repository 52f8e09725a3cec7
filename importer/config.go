package importer

import (
	"runtime"
	"time"

	"github.com/kbukum/speechprep/config"
	"github.com/kbukum/speechprep/observability"
	"github.com/kbukum/speechprep/sample"
	"github.com/kbukum/speechprep/segment"
	"github.com/kbukum/speechprep/textnorm"
	"github.com/kbukum/speechprep/validation"
)

// Config is the configuration of one import run.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Audio is the source recording. Non-WAV input is converted first.
	Audio string `yaml:"audio" mapstructure:"audio" validate:"required"`
	// XML is the transcript. Slices and CSVs go to its path without extension.
	XML string `yaml:"xml" mapstructure:"xml" validate:"required"`
	// FilterAlphabet rejects labels with characters outside this alphabet file.
	FilterAlphabet string `yaml:"filter_alphabet" mapstructure:"filter_alphabet"`
	// Normalize folds labels to ASCII before validation.
	Normalize bool `yaml:"normalize" mapstructure:"normalize"`
	// ValidateLocale picks the label validator.
	ValidateLocale string `yaml:"validate_locale" mapstructure:"validate_locale" validate:"oneof=default fr"`
	// NormalizationTable overrides the embedded French table.
	NormalizationTable string `yaml:"normalization_table" mapstructure:"normalization_table"`

	Workers           int     `yaml:"workers" mapstructure:"workers" validate:"gte=1"`
	MaxSegmentSeconds float64 `yaml:"max_segment_seconds" mapstructure:"max_segment_seconds" validate:"gt=0"`
	CloseTolerance    float64 `yaml:"close_tolerance" mapstructure:"close_tolerance" validate:"gt=0,lt=1"`
	SampleRate        int     `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gt=0"`
	MaxSampleSeconds  float64 `yaml:"max_sample_seconds" mapstructure:"max_sample_seconds" validate:"gt=0"`
	// ProgressEvery logs progress after this many processed segments.
	ProgressEvery int `yaml:"progress_every" mapstructure:"progress_every" validate:"gte=1"`

	ToolTimeout time.Duration `yaml:"tool_timeout" mapstructure:"tool_timeout" validate:"gte=0"`
	ToolRetries int           `yaml:"tool_retries" mapstructure:"tool_retries" validate:"gte=0,lte=10"`
	FFmpegPath  string        `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path"`

	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.ValidateLocale == "" {
		c.ValidateLocale = textnorm.LocaleDefault
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.MaxSegmentSeconds <= 0 {
		c.MaxSegmentSeconds = segment.DefaultMaxDuration
	}
	if c.CloseTolerance <= 0 {
		c.CloseTolerance = segment.DefaultCloseTolerance
	}
	if c.SampleRate <= 0 {
		c.SampleRate = sample.DefaultSampleRate
	}
	if c.MaxSampleSeconds <= 0 {
		c.MaxSampleSeconds = sample.DefaultMaxSeconds
	}
	if c.ProgressEvery <= 0 {
		c.ProgressEvery = 100
	}
	if c.ToolTimeout == 0 {
		c.ToolTimeout = 2 * time.Minute
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	c.Telemetry.ApplyDefaults(c.Name)
}

// Validate checks the base config, then every tagged field.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}
