// Package sample decides, segment by segment, what enters the dataset.
//
// Processor extracts the slice of audio a segment covers, measures it, cleans
// its label through a LabelFilter and applies the rejection ladder:
//
//	failed         the slice could not be extracted or measured
//	invalid_label  the label was rejected by validation or the alphabet
//	too_short      fewer 20ms steps than label characters
//	too_long       longer than the configured maximum
//
// Each call returns a Counters delta; totals are obtained by merging them.
package sample
