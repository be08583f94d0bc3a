package inspector

import "github.com/ggoodman/devtools-bridge/cdp"

// Agent interprets the requests of one session.
//
// HandleRequest may reply any number of times through the FrontendChannel it
// was constructed with. Returning a *cdp.TypeError (possibly wrapped) makes
// the session reply with an invalid-request error for the request's id; any
// other error is returned to the transport unchanged.
//
// If an Agent implements io.Closer, Close is called when the session is
// destroyed, before the remote connection is released.
type Agent interface {
	HandleRequest(req cdp.PreparsedRequest) error
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(req cdp.PreparsedRequest) error

func (f AgentFunc) HandleRequest(req cdp.PreparsedRequest) error { return f(req) }

// AgentFactory builds the agent of a new session.
type AgentFactory func(ch FrontendChannel, meta SessionMetadata) Agent

// SessionMetadata describes the context a session is opened in. It is passed
// unmodified to the AgentFactory.
type SessionMetadata struct {
	// IntegrationName names the host integration the frontend attached
	// through, if known.
	IntegrationName string
}
