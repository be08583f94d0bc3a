package inspector

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Target creates sessions for one debuggable page.
type Target struct {
	newAgent AgentFactory
	log      *slog.Logger
}

// TargetOption configures a Target.
type TargetOption func(*Target)

// WithLogger sets a custom logger for the Target and its sessions.
func WithLogger(l *slog.Logger) TargetOption {
	return func(t *Target) {
		if l != nil {
			t.log = l
		}
	}
}

// NewTarget returns a Target whose sessions are served by agents built with
// newAgent.
func NewTarget(newAgent AgentFactory, opts ...TargetOption) *Target {
	t := &Target{
		newAgent: newAgent,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Connect creates a session bound to remote and returns the handle through
// which the frontend's messages are delivered. The session's agent is
// constructed before Connect returns.
func (t *Target) Connect(remote RemoteConnection, meta SessionMetadata) LocalConnection {
	id := uuid.NewString()
	s := newSession(id, remote, meta, t.newAgent, t.log)
	t.log.DebugContext(s.ctx, "session opened")
	return &callbackLocalConnection{session: s}
}

// callbackLocalConnection forwards inbound messages to its session until
// disconnected.
type callbackLocalConnection struct {
	mu      sync.Mutex
	session *session
}

func (c *callbackLocalConnection) SendMessage(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrDisconnected
	}
	return c.session.handleMessage(message)
}

func (c *callbackLocalConnection) Disconnect() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s != nil {
		s.close()
	}
}
