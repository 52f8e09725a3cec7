// Package segment turns a time-aligned transcript into bounded-length
// utterances.
//
// ParseTranscript reads the rows, Build merges neighbouring rows while they
// stay contiguous and under the duration limit.
package segment
