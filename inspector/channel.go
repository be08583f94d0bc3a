package inspector

import (
	"weak"

	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/internal/metrics"
)

// FrontendChannel sends messages from an agent to the frontend. It does not
// keep the remote connection alive: once the session is destroyed, Send
// silently discards its message. The zero value discards everything.
type FrontendChannel struct {
	remote weak.Pointer[remoteHandle]
}

func newFrontendChannel(h *remoteHandle) FrontendChannel {
	return FrontendChannel{remote: weak.Make(h)}
}

// Send delivers message to the frontend, or drops it if the session is gone.
func (c FrontendChannel) Send(message string) {
	if h := c.remote.Value(); h != nil && h.send(message) {
		return
	}
	metrics.RecordDroppedSend()
}

// SendResult replies to id with result.
func (c FrontendChannel) SendResult(id *cdp.RequestID, result any) error {
	msg, err := cdp.NewResultResponse(id, result)
	if err != nil {
		return err
	}
	c.Send(msg)
	return nil
}

// SendError replies to id with a protocol error.
func (c FrontendChannel) SendError(id *cdp.RequestID, code cdp.ErrorCode, message string) {
	c.Send(cdp.NewErrorResponse(id, code, message))
}

// SendEvent pushes an event to the frontend.
func (c FrontendChannel) SendEvent(method string, params any) error {
	msg, err := cdp.NewEvent(method, params)
	if err != nil {
		return err
	}
	c.Send(msg)
	return nil
}
