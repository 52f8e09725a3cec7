package sample

// Outcome is the verdict for one segment.
type Outcome string

// Outcomes, in the order the rejection ladder checks them.
const (
	OutcomeFailed       Outcome = "failed"
	OutcomeInvalidLabel Outcome = "invalid_label"
	OutcomeTooShort     Outcome = "too_short"
	OutcomeTooLong      Outcome = "too_long"
	OutcomeImported     Outcome = "imported"
)

// Counters tallies processed segments by outcome. Values are immutable
// deltas: workers return one per segment and the caller folds them with
// Merge, which is associative and commutative.
type Counters struct {
	All          int64
	Failed       int64
	InvalidLabel int64
	TooShort     int64
	TooLong      int64
	// TotalFrames sums the audio frames of every processed segment,
	// accepted or not.
	TotalFrames int64
}

// Count returns the delta for a single segment.
func Count(o Outcome, frames int64) Counters {
	c := Counters{All: 1, TotalFrames: frames}
	switch o {
	case OutcomeFailed:
		c.Failed = 1
	case OutcomeInvalidLabel:
		c.InvalidLabel = 1
	case OutcomeTooShort:
		c.TooShort = 1
	case OutcomeTooLong:
		c.TooLong = 1
	}
	return c
}

// Merge returns the sum of c and o.
func (c Counters) Merge(o Counters) Counters {
	return Counters{
		All:          c.All + o.All,
		Failed:       c.Failed + o.Failed,
		InvalidLabel: c.InvalidLabel + o.InvalidLabel,
		TooShort:     c.TooShort + o.TooShort,
		TooLong:      c.TooLong + o.TooLong,
		TotalFrames:  c.TotalFrames + o.TotalFrames,
	}
}

// Skipped returns the number of rejected segments.
func (c Counters) Skipped() int64 {
	return c.Failed + c.InvalidLabel + c.TooShort + c.TooLong
}

// Imported returns the number of accepted segments.
func (c Counters) Imported() int64 { return c.All - c.Skipped() }

// Map returns the counters keyed by category name.
func (c Counters) Map() map[string]int64 {
	return map[string]int64{
		"all":           c.All,
		"failed":        c.Failed,
		"invalid_label": c.InvalidLabel,
		"too_short":     c.TooShort,
		"too_long":      c.TooLong,
		"total_time":    c.TotalFrames,
	}
}
