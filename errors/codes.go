package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Input errors. Raised before any segment is processed, they abort the run.
const (
	// ErrCodeInvalidInput indicates an invalid argument or configuration value.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidTranscript indicates the input transcript cannot be read or parsed.
	ErrCodeInvalidTranscript ErrorCode = "INVALID_TRANSCRIPT"
)

// Label errors
const (
	// ErrCodeInvalidNumeral indicates a numeral the word conversion cannot parse.
	// It is fatal for the whole run.
	ErrCodeInvalidNumeral ErrorCode = "INVALID_NUMERAL"
	// ErrCodeUnknownSymbol indicates a transcript character missing from the alphabet.
	ErrCodeUnknownSymbol ErrorCode = "UNKNOWN_SYMBOL"
)

// Tool errors (per segment, recorded and skipped)
const (
	// ErrCodeExtractionFailed indicates an external audio tool failed.
	ErrCodeExtractionFailed ErrorCode = "EXTRACTION_FAILED"
	// ErrCodeTimeout indicates an external tool exceeded its time budget.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Internal errors
const (
	// ErrCodeInvariantViolated indicates the import bookkeeping does not add up.
	ErrCodeInvariantViolated ErrorCode = "INVARIANT_VIOLATED"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeExtractionFailed: true,
	ErrCodeTimeout:          true,
}

// fatalCodes abort the whole import when they escape a worker.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeInvalidInput:      true,
	ErrCodeInvalidTranscript: true,
	ErrCodeInvalidNumeral:    true,
	ErrCodeInvariantViolated: true,
	ErrCodeInternal:          true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// IsFatalCode returns true if an error with this code must abort the run.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
