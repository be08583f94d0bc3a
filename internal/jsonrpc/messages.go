package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// Response is a reply to a frontend request. DevTools frontends do not send or
// expect the "jsonrpc" version member, so it is not part of the wire shape.
//
// The id member is always present; a nil ID is encoded as null, which is what
// frontends expect when the request id could not be recovered.
type Response struct {
	ID     *RequestID      `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *Error          `json:"error,omitempty"`
}

// Notification is an event pushed to the frontend without a request.
type Notification struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// Error is a JSON-RPC error object.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewResultResponse builds a successful response object.
func NewResultResponse(id *RequestID, result any) (*Response, error) {
	if result == nil {
		result = struct{}{}
	}
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		Result: resultBytes,
		ID:     id,
	}, nil
}

// NewErrorResponse builds an error response with the given code.
func NewErrorResponse(id *RequestID, code ErrorCode, message string) *Response {
	return &Response{
		Error: &Error{
			Code:    code,
			Message: message,
		},
		ID: id,
	}
}

// NewNotification builds an event object.
func NewNotification(method string, params any) (*Notification, error) {
	n := &Notification{Method: method}
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params: %w", err)
		}
		n.Params = b
	}
	return n, nil
}
