package infact

import "fmt"

// ErrorClass separates malformed input from misuse of the stream API.
type ErrorClass int

const (
	// ErrorClassLex marks a malformed token in the input. Fatal to the
	// current scan; no resynchronization is attempted.
	ErrorClassLex ErrorClass = iota
	// ErrorClassUsage marks a programming-contract violation, such as
	// calling Next when HasNext returns false.
	ErrorClassUsage
)

func (ec ErrorClass) String() string {
	switch ec {
	case ErrorClassLex:
		return "LEX"
	case ErrorClassUsage:
		return "USAGE"
	default:
		return "UNKNOWN"
	}
}

// ScanError describes a fatal tokenization failure with the byte offset
// and line where it occurred. Callers must treat it as non-recoverable.
type ScanError struct {
	Pos     int        `json:"pos"`
	Line    int        `json:"line"`
	Message string     `json:"message"`
	Class   ErrorClass `json:"class"`
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("line %d: at stream pos %d: %s", e.Line, e.Pos, e.Message)
}

// ErrorSink receives every fatal ScanError before it is returned to the
// caller. It exists so diagnostics can be routed to an external channel
// (stderr, a log collector) without changing the error-value contract.
type ErrorSink func(*ScanError)
