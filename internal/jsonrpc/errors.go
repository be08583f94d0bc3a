package jsonrpc

// ErrorCode is a JSON-RPC 2.0 error code as used by the Chrome DevTools
// Protocol.
type ErrorCode int

const (
	// ErrorCodeParseError indicates invalid JSON was received from the frontend.
	ErrorCodeParseError ErrorCode = -32700
	// ErrorCodeInvalidRequest indicates the JSON sent is not a valid request
	// envelope, or one of its fields had an unexpected shape.
	ErrorCodeInvalidRequest ErrorCode = -32600
	// ErrorCodeMethodNotFound indicates the method does not exist / is not available.
	ErrorCodeMethodNotFound ErrorCode = -32601
	// ErrorCodeInvalidParams indicates invalid method parameters.
	ErrorCodeInvalidParams ErrorCode = -32602
	// ErrorCodeInternalError indicates an internal error in the agent.
	ErrorCodeInternalError ErrorCode = -32603
)

// String returns the conventional short name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodeParseError:
		return "parse_error"
	case ErrorCodeInvalidRequest:
		return "invalid_request"
	case ErrorCodeMethodNotFound:
		return "method_not_found"
	case ErrorCodeInvalidParams:
		return "invalid_params"
	case ErrorCodeInternalError:
		return "internal_error"
	default:
		return "other"
	}
}
