// Package stdio implements a single-session inspector transport over
// stdin/stdout. It is intended for embedding the bridge as a subprocess of a
// debugger frontend, and for scripted local debugging where piping JSON is
// simpler than opening a WebSocket.
//
// Characteristics
//
//	Connection model : 1 process <-> 1 frontend
//	Sessions         : exactly one, destroyed at EOF or cancellation
//	Framing          : one CDP message per line, in both directions
//
// Example:
//
//	target := inspector.NewTarget(pageagent.Factory())
//	h := stdio.NewHandler(target)
//	if err := h.Serve(context.Background()); err != nil { log.Fatal(err) }
package stdio
