package cdp

import (
	"encoding/json"

	"github.com/ggoodman/devtools-bridge/internal/jsonrpc"
)

// NewErrorResponse renders an error reply. A nil id is rendered as null.
func NewErrorResponse(id *RequestID, code ErrorCode, message string) string {
	b, err := json.Marshal(jsonrpc.NewErrorResponse(id, code, message))
	if err != nil {
		// Every member is a string, an integer or null.
		panic("cdp: marshal error response: " + err.Error())
	}
	return string(b)
}

// NewResultResponse renders a successful reply. A nil result is rendered as
// an empty object.
func NewResultResponse(id *RequestID, result any) (string, error) {
	resp, err := jsonrpc.NewResultResponse(id, result)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// NewEvent renders an event notification.
func NewEvent(method string, params any) (string, error) {
	n, err := jsonrpc.NewNotification(method, params)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
