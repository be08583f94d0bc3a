// Package inspector binds one remote debugger connection to one local agent
// for the lifetime of a debugging session.
//
// A Target is the session factory. Connect takes ownership of a
// RemoteConnection (the frontend, e.g. a DevTools client), constructs the
// agent for the session, and returns a LocalConnection through which the
// transport delivers the frontend's messages:
//
//	target := inspector.NewTarget(pageagent.Factory())
//	local := target.Connect(remote, inspector.SessionMetadata{IntegrationName: "demo"})
//	defer local.Disconnect()
//	for msg := range inbound {
//	    if err := local.SendMessage(msg); err != nil {
//	        return err // not a protocol error; the agent failed
//	    }
//	}
//
// # Error replies
//
// Each inbound message is preparsed and handed to the agent. Three failure
// kinds are answered on the frontend channel and never returned to the
// caller:
//
//	not well-formed JSON                 -32700  id null
//	malformed request envelope           -32600  id null
//	agent *cdp.TypeError reading fields  -32600  id of the request
//
// Any other error returned by the agent is returned from SendMessage.
//
// # Teardown
//
// The session holds the only strong reference to the remote connection; the
// FrontendChannel given to the agent holds a weak one. Disconnect closes the
// agent, then releases the remote, which receives OnDisconnect exactly once.
// From then on every FrontendChannel.Send is a silent no-op, so an agent that
// still holds its channel (a timer, a background goroutine) can never reach a
// released transport.
package inspector
