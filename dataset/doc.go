// Package dataset assembles the accepted samples into train, dev and test
// CSVs and reports on the run.
package dataset
