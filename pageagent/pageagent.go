// Package pageagent provides an inspector.Agent that dispatches requests to
// handlers registered per method.
package pageagent

import (
	"fmt"
	"log/slog"

	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/inspector"
)

// HandlerFunc serves one method. It replies through ch. Returning a
// *cdp.TypeError produces an invalid-request reply for req.ID; any other
// error is fatal to the session's transport.
type HandlerFunc func(ch inspector.FrontendChannel, meta inspector.SessionMetadata, req cdp.PreparsedRequest) error

// Agent dispatches requests by method name. Methods without a handler are
// answered with a method-not-found error.
type Agent struct {
	ch       inspector.FrontendChannel
	meta     inspector.SessionMetadata
	handlers map[string]HandlerFunc
	onClose  []func()
	log      *slog.Logger
}

var _ inspector.Agent = (*Agent)(nil)

// Option configures an Agent.
type Option func(*Agent)

// WithHandler registers h for method. A later registration for the same
// method replaces the earlier one.
func WithHandler(method string, h HandlerFunc) Option {
	return func(a *Agent) {
		if h != nil {
			a.handlers[method] = h
		}
	}
}

// WithCloseHook registers fn to run when the session is destroyed, while the
// frontend channel is still connected.
func WithCloseHook(fn func()) Option {
	return func(a *Agent) {
		if fn != nil {
			a.onClose = append(a.onClose, fn)
		}
	}
}

// WithLogger sets a custom logger for the Agent.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) {
		if l != nil {
			a.log = l
		}
	}
}

// New returns an Agent replying on ch.
func New(ch inspector.FrontendChannel, meta inspector.SessionMetadata, opts ...Option) *Agent {
	a := &Agent{
		ch:       ch,
		meta:     meta,
		handlers: make(map[string]HandlerFunc),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Factory returns an inspector.AgentFactory that builds an Agent per session
// with opts.
func Factory(opts ...Option) inspector.AgentFactory {
	return func(ch inspector.FrontendChannel, meta inspector.SessionMetadata) inspector.Agent {
		return New(ch, meta, opts...)
	}
}

// HandleRequest implements inspector.Agent.
func (a *Agent) HandleRequest(req cdp.PreparsedRequest) error {
	h, ok := a.handlers[req.Method]
	if !ok {
		a.log.Debug("unsupported method", slog.String("method", req.Method))
		a.ch.SendError(req.ID, cdp.ErrorCodeMethodNotFound, fmt.Sprintf("Unsupported method '%s'", req.Method))
		return nil
	}
	return h(a.ch, a.meta, req)
}

// Close runs the registered close hooks.
func (a *Agent) Close() error {
	for _, fn := range a.onClose {
		fn()
	}
	return nil
}
