// Package errors provides the structured error type used across speechprep.
// Every error carries a machine-readable code that decides whether it aborts
// the import (fatal) or is recorded against a single segment and skipped.
package errors
