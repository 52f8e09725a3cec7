package dataset

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/kbukum/speechprep/errors"
	"github.com/kbukum/speechprep/sample"
)

// Report summarises an import run.
type Report struct {
	Counters   sample.Counters
	SampleRate int
	MaxSeconds float64
}

// AudioSeconds returns the measured audio of all processed segments.
func (r Report) AudioSeconds() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(r.Counters.TotalFrames) / float64(r.SampleRate)
}

// Lines renders the report. Skip categories with no samples are omitted.
func (r Report) Lines() []string {
	c := r.Counters
	lines := []string{fmt.Sprintf("Imported %d samples.", c.Imported())}
	if c.Failed > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d samples that failed upon conversion.", c.Failed))
	}
	if c.InvalidLabel > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d samples that failed on transcript validation.", c.InvalidLabel))
	}
	if c.TooShort > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d samples that were too short to match the transcript.", c.TooShort))
	}
	if c.TooLong > 0 {
		lines = append(lines, fmt.Sprintf("Skipped %d samples that were longer than %s seconds.",
			c.TooLong, strconv.FormatFloat(r.MaxSeconds, 'f', -1, 64)))
	}
	lines = append(lines, fmt.Sprintf("Final amount of imported audio: %s.", FormatHours(r.AudioSeconds())))
	if c.All > 0 {
		lines = append(lines, fmt.Sprintf("Accepted %d of %d segments (%.1f%%).",
			c.Imported(), c.All, 100*float64(c.Imported())/float64(c.All)))
	}
	return lines
}

// String joins Lines with newlines.
func (r Report) String() string { return strings.Join(r.Lines(), "\n") }

// WriteTo writes the report followed by a newline.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String()+"\n")
	return int64(n), err
}

// Fields returns the report as log fields.
func (r Report) Fields() map[string]interface{} {
	f := make(map[string]interface{}, 8)
	for k, v := range r.Counters.Map() {
		f[k] = v
	}
	f["imported"] = r.Counters.Imported()
	f["audio_hours"] = FormatHours(r.AudioSeconds())
	return f
}

// FormatHours renders seconds as H:MM:SS, truncating fractions.
func FormatHours(secs float64) string {
	total := int64(secs)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, total%3600/60, total%60)
}

// CheckInvariants verifies the bookkeeping of a finished run: every segment
// was counted once and every imported sample was written.
func CheckInvariants(c sample.Counters, segments, written int) error {
	if c.All != int64(segments) {
		return apperrors.InvariantViolated("processed segments", int64(segments), c.All)
	}
	if int64(written) != c.Imported() {
		return apperrors.InvariantViolated("written samples", c.Imported(), int64(written))
	}
	return nil
}
