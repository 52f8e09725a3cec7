// Package importer runs a complete import of one recording and its XML
// transcript into train, dev and test CSVs of audio slices.
//
// A run segments the transcript, processes segments in parallel with a
// sample.Processor, restores transcript order, partitions the accepted
// samples and verifies that every segment was accounted for.
package importer
