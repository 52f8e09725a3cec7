package numwords

import (
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
)

const (
	negWord   = "moins"
	pointWord = "virgule"
	zeroWord  = "zéro"
	thousand  = "mille"
)

var units = [...]string{
	"", "un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf",
	"dix", "onze", "douze", "treize", "quatorze", "quinze", "seize",
	"dix-sept", "dix-huit", "dix-neuf",
}

// tens[i] spells i*10 for 2 <= i <= 6. Seventies and nineties are built on
// soixante and quatre-vingt.
var tens = [...]string{"", "", "vingt", "trente", "quarante", "cinquante", "soixante"}

// scales[k] names 10^(3k+6). Every power of a thousand from a million up has
// its own word, so a multiplier is always below 1000.
var scales = [...]string{
	"million", "milliard",
	"billion", "billiard",
	"trillion", "trilliard",
	"quadrillion", "quadrilliard",
	"quintillion", "quintilliard",
	"sextillion", "sextilliard",
	"septillion", "septilliard",
	"octillion", "octilliard",
	"nonillion", "nonilliard",
}

// MaxIntegerDigits is the longest integer part French can spell.
const MaxIntegerDigits = 3 * (len(scales) + 2)

// Digit spells a single decimal digit: '3' becomes "trois".
func Digit(c byte) string {
	if c == '0' {
		return zeroWord
	}
	return units[c-'0']
}

// Cardinal spells a non-negative integer.
func Cardinal(n uint64) string {
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return spellInteger(string(buf[i:]))
}

// French spells out a numeric token such as "50000", "3.14", "+7" or "1e3".
// A fractional part is read digit by digit after "virgule", with trailing
// zeros dropped, so "2.0" reads as "deux" and "0.05" as "zéro virgule zéro cinq".
// Tokens that are not numbers fail with an INVALID_NUMERAL error.
func French(token string) (string, error) {
	neg, intPart, fracPart, ok := parseDecimal(token)
	if !ok {
		return "", apperrors.InvalidNumeral(token)
	}
	if len(intPart) > MaxIntegerDigits {
		return "", apperrors.InvalidNumeral(token).WithDetail("max_digits", MaxIntegerDigits)
	}

	words := make([]string, 0, 2+len(fracPart))
	if neg && (intPart != "0" || fracPart != "") {
		words = append(words, negWord)
	}
	words = append(words, spellInteger(intPart))
	if fracPart != "" {
		words = append(words, pointWord)
		for i := 0; i < len(fracPart); i++ {
			words = append(words, Digit(fracPart[i]))
		}
	}
	return strings.Join(words, " "), nil
}

// spellInteger spells a string of ASCII digits without leading zeros.
func spellInteger(digits string) string {
	if digits == "0" {
		return zeroWord
	}

	// Split into groups of three from the right; groups[0] is the highest.
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	var groups []int
	groups = append(groups, atoi(digits[:head]))
	for i := head; i < len(digits); i += 3 {
		groups = append(groups, atoi(digits[i:i+3]))
	}

	var words []string
	for i, g := range groups {
		if g == 0 {
			continue
		}
		power := len(groups) - 1 - i
		switch power {
		case 0:
			words = append(words, spellGroup(g, true))
		case 1:
			if g > 1 {
				words = append(words, spellGroup(g, false))
			}
			words = append(words, thousand)
		default:
			scale := scales[power-2]
			if g > 1 {
				scale += "s"
			}
			words = append(words, spellGroup(g, true), scale)
		}
	}
	return strings.Join(words, " ")
}

// spellGroup spells 1 <= g <= 999. plural selects "cents" and
// "quatre-vingts" for round values; they lose their s before "mille".
func spellGroup(g int, plural bool) string {
	hundreds, rest := g/100, g%100

	var parts []string
	switch {
	case hundreds == 1:
		parts = append(parts, "cent")
	case hundreds > 1:
		word := "cent"
		if rest == 0 && plural {
			word = "cents"
		}
		parts = append(parts, units[hundreds], word)
	}
	if rest > 0 {
		parts = append(parts, spellBelowHundred(rest, plural))
	}
	return strings.Join(parts, " ")
}

func spellBelowHundred(n int, plural bool) string {
	if n < 20 {
		return units[n]
	}
	ten, unit := n/10, n%10
	switch {
	case ten < 7:
		return joinTens(tens[ten], unit)
	case ten == 7:
		return joinTens("soixante", 10+unit)
	default:
		if n == 80 {
			if plural {
				return "quatre-vingts"
			}
			return "quatre-vingt"
		}
		// No "et" after quatre-vingt: 81 is quatre-vingt-un.
		return "quatre-vingt-" + units[n-80]
	}
}

func joinTens(base string, unit int) string {
	switch unit {
	case 0:
		return base
	case 1, 11:
		return base + " et " + units[unit]
	default:
		return base + "-" + units[unit]
	}
}

// parseDecimal accepts [+-]digits[.digits][e[+-]digits] with at least one
// digit in the mantissa. The result has no leading zeros in intPart (at least
// "0") and no trailing zeros in fracPart.
func parseDecimal(s string) (neg bool, intPart, fracPart string, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, "", "", false
	}
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	mantissa, exp := s, 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa = s[:i]
		e, eok := parseExponent(s[i+1:])
		if !eok {
			return false, "", "", false
		}
		exp = e
	}

	whole, frac, _ := strings.Cut(mantissa, ".")
	if whole == "" && frac == "" || !allDigits(whole) || !allDigits(frac) {
		return false, "", "", false
	}

	// Shift the decimal point by the exponent.
	digits := whole + frac
	point := len(whole) + exp
	switch {
	case point <= 0:
		intPart, fracPart = "0", strings.Repeat("0", -point)+digits
	case point >= len(digits):
		intPart, fracPart = digits+strings.Repeat("0", point-len(digits)), ""
	default:
		intPart, fracPart = digits[:point], digits[point:]
	}

	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	fracPart = strings.TrimRight(fracPart, "0")
	return neg, intPart, fracPart, true
}

func parseExponent(s string) (int, bool) {
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if s == "" || len(s) > 4 || !allDigits(s) {
		return 0, false
	}
	e := atoi(s)
	if neg {
		e = -e
	}
	return e, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
