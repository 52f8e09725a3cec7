package segment

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
)

type xmlTranscript struct {
	Rows []xmlRow `xml:"row"`
}

type xmlRow struct {
	Timestamp string `xml:"timestamp,attr"`
	Duration  string `xml:"timedur,attr"`
	Text      string `xml:",chardata"`
}

// ReadTranscript parses the XML transcript at path.
func ReadTranscript(path string) ([]TranscriptRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.InvalidTranscript(path, err)
	}
	defer f.Close()
	return ParseTranscript(f, path)
}

// ParseTranscript reads rows from an XML document whose root holds <row>
// elements with "timestamp" and "timedur" attributes in seconds and the text
// as content. Other elements are ignored. Row order is kept as is.
func ParseTranscript(r io.Reader, name string) ([]TranscriptRow, error) {
	var doc xmlTranscript
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.InvalidTranscript(name, err)
	}

	rows := make([]TranscriptRow, 0, len(doc.Rows))
	for i, x := range doc.Rows {
		ts, err := parseSeconds(x.Timestamp)
		if err != nil {
			return nil, apperrors.InvalidTranscript(name, fmt.Errorf("row %d: timestamp: %w", i, err)).
				WithDetail("row", i)
		}
		dur, err := parseSeconds(x.Duration)
		if err != nil {
			return nil, apperrors.InvalidTranscript(name, fmt.Errorf("row %d: timedur: %w", i, err)).
				WithDetail("row", i)
		}
		rows = append(rows, TranscriptRow{Timestamp: ts, Duration: dur, Text: x.Text})
	}
	return rows, nil
}

func parseSeconds(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}
