package cdp

import (
	"fmt"

	"github.com/ggoodman/devtools-bridge/internal/jsonrpc"
)

// ErrorCode is a protocol error code carried in error replies.
type ErrorCode = jsonrpc.ErrorCode

// Protocol error codes.
const (
	ErrorCodeParseError     = jsonrpc.ErrorCodeParseError
	ErrorCodeInvalidRequest = jsonrpc.ErrorCodeInvalidRequest
	ErrorCodeMethodNotFound = jsonrpc.ErrorCodeMethodNotFound
	ErrorCodeInvalidParams  = jsonrpc.ErrorCodeInvalidParams
	ErrorCodeInternalError  = jsonrpc.ErrorCodeInternalError
)

// ParseError reports inbound text that is not syntactically valid JSON.
type ParseError struct {
	msg string
	err error
}

func (e *ParseError) Error() string { return e.msg }

func (e *ParseError) Unwrap() error { return e.err }

// TypeError reports a value whose runtime shape does not match what the
// reader expected: a malformed envelope, or a parameter read by an agent.
type TypeError struct {
	// Field is the path of the offending value, e.g. "method" or "params.url".
	Field string
	// Expected is the JSON type the reader asked for.
	Expected string
	// Actual is the JSON type that was found, or "missing".
	Actual string
}

func (e *TypeError) Error() string {
	if e.Actual == "missing" {
		return fmt.Sprintf("%s: expected %s, but the field is missing", e.Field, e.Expected)
	}
	return fmt.Sprintf("%s: expected %s, got %s", e.Field, e.Expected, e.Actual)
}

// NewTypeError returns a *TypeError for field. Agents use it to reject a
// parameter whose shape they validate themselves.
func NewTypeError(field, expected, actual string) *TypeError {
	return &TypeError{Field: field, Expected: expected, Actual: actual}
}
