package alphabet

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
)

// Codec maps transcript text to model labels and back.
type Codec interface {
	Encode(text string) ([]int, error)
	Decode(codes []int) (string, error)
	Size() int
	Serialize() []byte
}

// Alphabet is a fixed set of symbols, each with a code given by its position
// in the config file. It is immutable once built.
type Alphabet struct {
	symbols []string
	codes   map[string]int
}

var _ Codec = (*Alphabet)(nil)

// New builds an alphabet where symbols[i] has code i.
func New(symbols []string) (*Alphabet, error) {
	if len(symbols) > math.MaxUint16 {
		return nil, apperrors.InvalidInput("alphabet", fmt.Sprintf("%d symbols exceed the 16-bit code space", len(symbols)))
	}
	a := &Alphabet{
		symbols: make([]string, len(symbols)),
		codes:   make(map[string]int, len(symbols)),
	}
	for i, s := range symbols {
		if len(s) > math.MaxUint16 {
			return nil, apperrors.InvalidInput("alphabet", fmt.Sprintf("symbol %d is too long", i))
		}
		if prev, dup := a.codes[s]; dup {
			return nil, apperrors.InvalidInput("alphabet", fmt.Sprintf("symbol %q appears at codes %d and %d", s, prev, i))
		}
		a.symbols[i] = s
		a.codes[s] = i
	}
	return a, nil
}

// Parse reads the text config format: one symbol per line, in code order.
// Lines starting with '#' are comments; a line starting with `\#` stands for
// the '#' symbol itself. Blank lines are skipped.
func Parse(r io.Reader) (*Alphabet, error) {
	var symbols []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		switch {
		case strings.HasPrefix(line, `\#`):
			line = "#"
		case strings.HasPrefix(line, "#"), line == "":
			continue
		}
		symbols = append(symbols, line)
	}
	if err := sc.Err(); err != nil {
		return nil, apperrors.InvalidInput("alphabet", "cannot read alphabet").WithCause(err)
	}
	return New(symbols)
}

// Load parses the alphabet file at path.
func Load(path string) (*Alphabet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.InvalidInput("filter_alphabet", fmt.Sprintf("cannot open %s", path)).WithCause(err)
	}
	defer f.Close()
	return Parse(f)
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Has reports whether symbol has a code.
func (a *Alphabet) Has(symbol string) bool {
	_, ok := a.codes[symbol]
	return ok
}

// Symbols returns the symbols in code order.
func (a *Alphabet) Symbols() []string {
	return append([]string(nil), a.symbols...)
}

// Encode maps each character of text to its code. The first character
// without a code fails with an UNKNOWN_SYMBOL error naming it.
func (a *Alphabet) Encode(text string) ([]int, error) {
	out := make([]int, 0, len(text))
	for _, r := range text {
		code, ok := a.codes[string(r)]
		if !ok {
			return nil, apperrors.UnknownSymbol(string(r))
		}
		out = append(out, code)
	}
	return out, nil
}

// Decode is the inverse of Encode.
func (a *Alphabet) Decode(codes []int) (string, error) {
	var b strings.Builder
	for _, c := range codes {
		if c < 0 || c >= len(a.symbols) {
			return "", apperrors.InvalidInput("codes", fmt.Sprintf("code %d is outside the alphabet", c))
		}
		b.WriteString(a.symbols[c])
	}
	return b.String(), nil
}

// Serialize encodes the alphabet little-endian: a uint16 entry count, then
// per entry a uint16 code, a uint16 byte length and the UTF-8 symbol.
func (a *Alphabet) Serialize() []byte {
	buf := make([]byte, 0, 2+len(a.symbols)*5)
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(a.symbols)))
	for code, s := range a.symbols {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(code))
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(s)))
		buf = append(buf, s...)
	}
	return buf
}

// Deserialize restores an alphabet written by Serialize. Entries may come in
// any order but their codes must cover 0..count-1 exactly once.
func Deserialize(buf []byte) (*Alphabet, error) {
	if len(buf) < 2 {
		return nil, truncated(0)
	}
	count := int(binary.LittleEndian.Uint16(buf))
	symbols := make([]string, count)
	seen := make([]bool, count)

	off := 2
	for i := 0; i < count; i++ {
		if len(buf) < off+4 {
			return nil, truncated(off)
		}
		code := int(binary.LittleEndian.Uint16(buf[off:]))
		n := int(binary.LittleEndian.Uint16(buf[off+2:]))
		off += 4
		if len(buf) < off+n {
			return nil, truncated(off)
		}
		if code >= count || seen[code] {
			return nil, apperrors.InvalidInput("alphabet", fmt.Sprintf("entry %d has invalid or repeated code %d", i, code))
		}
		symbols[code] = string(buf[off : off+n])
		seen[code] = true
		off += n
	}
	if off != len(buf) {
		return nil, apperrors.InvalidInput("alphabet", fmt.Sprintf("%d trailing bytes", len(buf)-off))
	}
	return New(symbols)
}

func truncated(off int) error {
	return apperrors.InvalidInput("alphabet", fmt.Sprintf("serialized alphabet truncated at byte %d", off))
}
