package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/kbukum/speechprep/numwords"
)

const asciiDigits = "0123456789"

var (
	// thousandsGap matches one space inside a grouped number: "50 000".
	// French text also groups with U+00A0 and U+202F.
	thousandsGap = regexp.MustCompile(`(\d)[\s\p{Zs}](\d{3})`)
	spaceRun     = regexp.MustCompile(`[ ]{2,}`)
)

// Normalizer rewrites transcript labels with the rules of one Table.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	table *Table
}

// New creates a Normalizer for t. A nil table selects the built-in French one.
func New(t *Table) *Normalizer {
	if t == nil {
		t = FrenchTable()
	}
	return &Normalizer{table: t}
}

// Default returns a Normalizer over the built-in French table.
func Default() *Normalizer { return New(nil) }

// Table returns the rules in use.
func (n *Normalizer) Table() *Table { return n.table }

// Normalize substitutes special characters and anglicisms, then spells out
// numerals. A numeral that cannot be spelled returns an INVALID_NUMERAL error,
// which must abort the import.
func (n *Normalizer) Normalize(label string) (string, error) {
	label = apply(label, n.table.Specials)
	label = apply(label, n.table.Anglicisms)
	return NormalizeDigits(label)
}

// NormalizeDigits collapses space-grouped thousands ("50 000" to "50000") and
// replaces every token holding a digit by its French spelling. Tokens mixing
// letters and digits have each digit spelled in place: "3D" becomes "trois-D".
func NormalizeDigits(label string) (string, error) {
	if strings.IndexFunc(label, unicode.IsSpace) >= 0 && strings.ContainsAny(label, asciiDigits) {
		for {
			next := thousandsGap.ReplaceAllString(label, "${1}${2}")
			if next == label {
				break
			}
			label = next
		}
	}

	tokens := strings.Split(label, " ")
	for i, tok := range tokens {
		if !strings.ContainsAny(tok, asciiDigits) {
			continue
		}
		tok = strings.ReplaceAll(tok, ",", ".")
		tok = strings.ReplaceAll(tok, `"`, "")
		// Trailing punctuation as in "0.6." or "24?".
		if last, size := utf8.DecodeLastRuneInString(tok); !isDigit(last) && !unicode.IsLetter(last) {
			tok = tok[:len(tok)-size]
		}

		if strings.IndexFunc(tok, unicode.IsLetter) >= 0 {
			tokens[i] = spellDigitsInPlace(tok)
			continue
		}
		spelled, err := numwords.French(tok)
		if err != nil {
			return "", err
		}
		tokens[i] = spelled
	}
	return strings.Join(tokens, " "), nil
}

func spellDigitsInPlace(tok string) string {
	var b strings.Builder
	for i := 0; i < len(tok); i++ {
		if isDigit(rune(tok[i])) {
			b.WriteString(numwords.Digit(tok[i]))
			b.WriteByte('-')
			continue
		}
		b.WriteByte(tok[i])
	}
	return b.String()
}

// ValidateFR cleans a French label. It returns false when the label holds a
// digit, an asterisk or a rejected character, or when nothing is left.
func (n *Normalizer) ValidateFR(label string) (string, bool) {
	label = norm.NFKC.String(label)
	if strings.ContainsAny(label, asciiDigits+"*") {
		return "", false
	}
	for _, r := range n.table.Reject {
		if strings.Contains(label, r) {
			return "", false
		}
	}

	label = strings.ToLower(strings.TrimSpace(label))
	label = apply(label, n.table.Replacements)
	label = spaceRun.ReplaceAllString(label, " ")
	for _, d := range n.table.Drop {
		label = strings.ReplaceAll(label, d, "")
	}
	label = strings.ToLower(strings.TrimSpace(label))
	return label, label != ""
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
