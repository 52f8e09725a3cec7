package segment

import "math"

// Defaults used by the import.
const (
	DefaultMaxDuration    = 10.0
	DefaultCloseTolerance = 2.5e-4
)

// TranscriptRow is one time-stamped transcript fragment, in seconds.
type TranscriptRow struct {
	Timestamp float64
	Duration  float64
	Text      string
}

// End returns the time the row stops.
func (r TranscriptRow) End() float64 { return r.Timestamp + r.Duration }

// Segment is a span of source audio merged from consecutive rows. It becomes
// one training sample if it passes validation.
type Segment struct {
	// ID is the emission order, starting at 0. It names the slice file.
	ID          int
	SourceAudio string
	OutputDir   string
	Start       float64
	Duration    float64
	Text        string
}

// Config controls how rows are merged.
type Config struct {
	// MaxDuration is the target upper bound of a merged segment, in seconds.
	// A single row longer than this still becomes its own segment.
	MaxDuration float64
	// CloseTolerance is the relative drift allowed between the end of the
	// segment so far and the start of the next row.
	CloseTolerance float64
	SourceAudio    string
	OutputDir      string
}

func (c Config) withDefaults() Config {
	if c.MaxDuration <= 0 {
		c.MaxDuration = DefaultMaxDuration
	}
	if c.CloseTolerance <= 0 {
		c.CloseTolerance = DefaultCloseTolerance
	}
	return c
}

// Build merges rows into segments in a single greedy pass.
//
// A row extends the current segment when it starts where the segment ends
// (within CloseTolerance) and the extended segment stays under MaxDuration.
// The gap to the previous row is added to the duration, texts are
// concatenated as is. Otherwise the current segment is emitted and the row
// starts a new one. The last segment is always emitted.
func Build(rows []TranscriptRow, cfg Config) []Segment {
	if len(rows) == 0 {
		return nil
	}
	cfg = cfg.withDefaults()

	var out []Segment
	cur := cfg.start(0, rows[0])
	prev := rows[0]
	for _, row := range rows[1:] {
		// Gap (or overlap) against the previous row, not the segment start.
		delta := row.Timestamp - prev.End()
		contiguous := isClose(row.Timestamp, cur.Start+cur.Duration, cfg.CloseTolerance)
		short := cur.Duration+row.Duration+delta < cfg.MaxDuration

		if contiguous && short {
			cur.Duration += row.Duration + delta
			cur.Text += row.Text
		} else {
			out = append(out, cur)
			cur = cfg.start(cur.ID+1, row)
		}
		prev = row
	}
	return append(out, cur)
}

func (c Config) start(id int, row TranscriptRow) Segment {
	return Segment{
		ID:          id,
		SourceAudio: c.SourceAudio,
		OutputDir:   c.OutputDir,
		Start:       row.Timestamp,
		Duration:    row.Duration,
		Text:        row.Text,
	}
}

// isClose reports |a-b| <= rel * max(|a|, |b|).
func isClose(a, b, rel float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rel*math.Max(math.Abs(a), math.Abs(b))
}
