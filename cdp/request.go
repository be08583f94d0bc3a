package cdp

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/ggoodman/devtools-bridge/internal/jsonrpc"
)

// RequestID identifies a request; nil when the frontend sent none.
type RequestID = jsonrpc.RequestID

// NewRequestID builds a RequestID from an integer or a string.
func NewRequestID(v interface{}) *RequestID { return jsonrpc.NewRequestID(v) }

// PreparsedRequest is an inbound request whose envelope has been validated.
type PreparsedRequest struct {
	ID     *RequestID
	Method string
	Params Params
}

// Preparse validates the envelope of a raw inbound message. The returned
// error is either a *ParseError or a *TypeError.
func Preparse(message []byte) (PreparsedRequest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(message, &fields); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || !json.Valid(message) {
			return PreparsedRequest{}, &ParseError{msg: err.Error(), err: err}
		}
		return PreparsedRequest{}, &TypeError{Field: "message", Expected: "object", Actual: kindOf(message)}
	}
	if fields == nil {
		// Top-level null decodes into a nil map without error.
		return PreparsedRequest{}, &TypeError{Field: "message", Expected: "object", Actual: "null"}
	}

	var req PreparsedRequest

	if raw, ok := fields["id"]; ok {
		var id RequestID
		if err := json.Unmarshal(raw, &id); err != nil {
			return PreparsedRequest{}, &TypeError{Field: "id", Expected: "integer or string", Actual: kindOf(raw)}
		}
		if !id.IsNil() {
			req.ID = &id
		}
	}

	raw, ok := fields["method"]
	if !ok {
		return PreparsedRequest{}, &TypeError{Field: "method", Expected: "string", Actual: "missing"}
	}
	if err := json.Unmarshal(raw, &req.Method); err != nil || kindOf(raw) != "string" {
		return PreparsedRequest{}, &TypeError{Field: "method", Expected: "string", Actual: kindOf(raw)}
	}

	if raw, ok := fields["params"]; ok {
		switch kindOf(raw) {
		case "object":
			req.Params = Params(raw)
		case "null":
		default:
			return PreparsedRequest{}, &TypeError{Field: "params", Expected: "object", Actual: kindOf(raw)}
		}
	}

	return req, nil
}

// kindOf names the JSON type of an already-valid value.
func kindOf(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "missing"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
