package alphabet

import (
	"bytes"
	"encoding/binary"
	"fmt"

	apperrors "github.com/kbukum/speechprep/errors"
)

// ByteAlphabetSize is the number of content codes. Code 255 is left free for
// the CTC blank.
const ByteAlphabetSize = 255

// ByteAlphabet encodes the UTF-8 bytes of a transcript directly:
// code = byte - 1. NUL never occurs in transcripts, so every other byte fits.
type ByteAlphabet struct{}

var _ Codec = ByteAlphabet{}

// Size returns ByteAlphabetSize.
func (ByteAlphabet) Size() int { return ByteAlphabetSize }

// Encode returns one code per byte of text.
func (ByteAlphabet) Encode(text string) ([]int, error) {
	out := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == 0 {
			return nil, apperrors.UnknownSymbol(`\x00`)
		}
		out[i] = int(text[i]) - 1
	}
	return out, nil
}

// Decode shifts codes back to bytes. Invalid UTF-8 decodes to U+FFFD.
func (ByteAlphabet) Decode(codes []int) (string, error) {
	raw := make([]byte, len(codes))
	for i, c := range codes {
		if c < 0 || c >= ByteAlphabetSize {
			return "", apperrors.InvalidInput("codes", fmt.Sprintf("code %d is outside the byte alphabet", c))
		}
		raw[i] = byte(c + 1)
	}
	return string(bytes.Runes(raw)), nil
}

// Serialize writes the fixed table: a 255 header, then per code i the entry
// (i, 1, byte i+1) with 16-bit fields.
func (ByteAlphabet) Serialize() []byte {
	buf := make([]byte, 0, 2+ByteAlphabetSize*5)
	buf = binary.LittleEndian.AppendUint16(buf, ByteAlphabetSize)
	for i := 0; i < ByteAlphabetSize; i++ {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(i))
		buf = binary.LittleEndian.AppendUint16(buf, 1)
		buf = append(buf, byte(i+1))
	}
	return buf
}

// DeserializeBytes checks that buf holds the fixed byte table.
func DeserializeBytes(buf []byte) (ByteAlphabet, error) {
	if !bytes.Equal(buf, ByteAlphabet{}.Serialize()) {
		if len(buf) >= 2 {
			if n := binary.LittleEndian.Uint16(buf); n != ByteAlphabetSize {
				return ByteAlphabet{}, apperrors.InvalidInput("alphabet",
					fmt.Sprintf("byte alphabet header is %d, want %d", n, ByteAlphabetSize))
			}
		}
		return ByteAlphabet{}, apperrors.InvalidInput("alphabet", "not a serialized byte alphabet")
	}
	return ByteAlphabet{}, nil
}
