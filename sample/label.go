package sample

import (
	"github.com/kbukum/speechprep/alphabet"
	apperrors "github.com/kbukum/speechprep/errors"
	"github.com/kbukum/speechprep/textnorm"
)

// LabelFilter turns a raw transcript into a training label, or rejects it.
// Stages: optional ASCII folding, normalization, validation, then an
// optional alphabet check.
type LabelFilter struct {
	fold       bool
	normalizer *textnorm.Normalizer
	validate   textnorm.Validator
	alphabet   alphabet.Codec
}

// LabelOption customises a LabelFilter.
type LabelOption func(*LabelFilter)

// WithASCIIFolding strips diacritics and non-ASCII characters first.
func WithASCIIFolding(enabled bool) LabelOption {
	return func(f *LabelFilter) { f.fold = enabled }
}

// WithValidator replaces ValidateLabel.
func WithValidator(v textnorm.Validator) LabelOption {
	return func(f *LabelFilter) { f.validate = v }
}

// WithAlphabet rejects labels the alphabet cannot encode.
func WithAlphabet(a alphabet.Codec) LabelOption {
	return func(f *LabelFilter) { f.alphabet = a }
}

// NewLabelFilter creates a filter. A nil normalizer uses the French default.
func NewLabelFilter(n *textnorm.Normalizer, opts ...LabelOption) *LabelFilter {
	if n == nil {
		n = textnorm.Default()
	}
	f := &LabelFilter{normalizer: n, validate: textnorm.ValidateLabel}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply returns the cleaned label and whether it is usable. The error is
// non-nil only for failures that must abort the run, such as a numeral
// that cannot be spelled.
func (f *LabelFilter) Apply(raw string) (string, bool, error) {
	label := raw
	if f.fold {
		label = textnorm.FoldASCII(label)
	}
	label, err := f.normalizer.Normalize(label)
	if err != nil {
		return "", false, err
	}
	label, ok := f.validate(label)
	if !ok {
		return "", false, nil
	}
	if f.alphabet != nil {
		if _, err := f.alphabet.Encode(label); err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok && !appErr.Fatal() {
				return "", false, nil
			}
			return "", false, err
		}
	}
	return label, true, nil
}
