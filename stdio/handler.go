package stdio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ggoodman/devtools-bridge/inspector"
	"github.com/ggoodman/devtools-bridge/internal/logctx"
)

const defaultMaxMessageSize = 16 << 20

// Handler is a single-connection stdio transport that reads CDP messages
// from an io.Reader and writes the session's outbound messages to an
// io.Writer. By default, it uses os.Stdin and os.Stdout.
//
// The handler is transport-only; protocol semantics belong to the agent of
// the provided inspector.Target.
type Handler struct {
	target         *inspector.Target
	meta           inspector.SessionMetadata
	r              io.Reader
	w              io.Writer
	l              *slog.Logger
	userProvider   UserProvider
	maxMessageSize int
}

// NewHandler constructs a stdio Handler with defaults and applies options.
func NewHandler(target *inspector.Target, opts ...Option) *Handler {
	h := &Handler{
		target:         target,
		r:              os.Stdin,
		w:              os.Stdout,
		l:              slog.Default(),
		userProvider:   OSUserProvider{},
		maxMessageSize: defaultMaxMessageSize,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Serve connects one session and feeds it the reader's lines until EOF or
// the context is canceled; the session is then disconnected. An error
// returned by the session's agent ends Serve with that error.
func (h *Handler) Serve(ctx context.Context) error {
	meta := h.meta
	if meta.IntegrationName == "" {
		meta.IntegrationName = "stdio"
		if uid, err := h.userProvider.CurrentUserID(); err == nil && uid != "" {
			meta.IntegrationName = "stdio:" + uid
		}
	}
	ctx, cancel := context.WithCancel(logctx.WithConnData(ctx, &logctx.ConnData{Transport: "stdio"}))
	defer cancel()

	remote := &lineRemote{w: bufio.NewWriter(h.w), log: h.l}
	local := h.target.Connect(remote, meta)
	defer local.Disconnect()

	h.l.InfoContext(ctx, "stdio session started", slog.String("integration", meta.IntegrationName))

	lines := make(chan string)
	var readErr error
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(h.r)
		sc.Buffer(make([]byte, 0, min(64*1024, h.maxMessageSize)), h.maxMessageSize)
		for sc.Scan() {
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		readErr = sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if readErr != nil {
					return fmt.Errorf("read input: %w", readErr)
				}
				h.l.InfoContext(ctx, "stdio input closed")
				return nil
			}
			if err := local.SendMessage(line); err != nil {
				h.l.ErrorContext(ctx, "session failed", slog.String("err", err.Error()))
				return err
			}
		}
	}
}

// lineRemote writes each outbound message as one line. After the first write
// error, or once disconnected, messages are discarded.
type lineRemote struct {
	mu     sync.Mutex
	w      *bufio.Writer
	log    *slog.Logger
	err    error
	closed bool
}

func (r *lineRemote) OnMessage(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.err != nil {
		return
	}
	if _, err := r.w.WriteString(message); err != nil {
		r.fail(err)
		return
	}
	if err := r.w.WriteByte('\n'); err != nil {
		r.fail(err)
		return
	}
	if err := r.w.Flush(); err != nil {
		r.fail(err)
	}
}

func (r *lineRemote) OnDisconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *lineRemote) fail(err error) {
	r.err = err
	r.log.Warn("stdio write failed; discarding further output", slog.String("err", err.Error()))
}
