package textnorm

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	apperrors "github.com/kbukum/speechprep/errors"
)

// Validator cleans a label and reports whether it is usable.
type Validator func(label string) (string, bool)

// Validation locales.
const (
	LocaleDefault = "default"
	LocaleFR      = "fr"
)

var (
	unspeakable = regexp.MustCompile(`[0-9]|[(<\[\]&*{]`)
	punctuation = strings.NewReplacer(".", "", ",", "", ";", "", "?", "", "!", "", ":", "", `"`, "")
)

// ValidateLabel keeps labels made of letters, apostrophes and spaces.
// Digits and bracket-like characters reject the label; punctuation is
// removed and the result lowercased.
func ValidateLabel(label string) (string, bool) {
	if unspeakable.MatchString(label) {
		return "", false
	}
	label = strings.ReplaceAll(label, "-", " ")
	label = strings.ReplaceAll(label, "_", " ")
	label = spaceRun.ReplaceAllString(label, " ")
	label = punctuation.Replace(label)
	label = strings.ToLower(strings.TrimSpace(label))
	return label, label != ""
}

// ValidateLabelFR validates with the built-in French table.
func ValidateLabelFR(label string) (string, bool) {
	return Default().ValidateFR(label)
}

// Validator returns the validation function for a locale.
func (n *Normalizer) Validator(locale string) (Validator, error) {
	switch locale {
	case "", LocaleDefault:
		return ValidateLabel, nil
	case LocaleFR:
		return n.ValidateFR, nil
	default:
		return nil, apperrors.InvalidInput("validate_locale", fmt.Sprintf("unknown locale %q", locale))
	}
}

// FoldASCII trims the label, decomposes it (NFKD) and drops every non-ASCII
// rune, so "élève" becomes "eleve".
func FoldASCII(label string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, strings.TrimSpace(label))
	if err != nil {
		return ""
	}
	return out
}
