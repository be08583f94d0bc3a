package devtools

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"

	"github.com/ggoodman/devtools-bridge/inspector"
	"github.com/ggoodman/devtools-bridge/internal/logctx"
)

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	page, ok := s.page(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := logctx.WithConnData(r.Context(), &logctx.ConnData{
		Transport:  "websocket",
		RemoteAddr: r.RemoteAddr,
		PageID:     id,
	})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: s.originPatterns})
	if err != nil {
		s.log.WarnContext(ctx, "websocket accept failed", slog.String("err", err.Error()))
		return
	}
	conn.SetReadLimit(s.readLimit)

	remote := newSocketRemote(conn, s.outboxSize, s.log)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		remote.writeLoop(ctx, s.writeTimeout)
	}()

	local := page.Target.Connect(remote, page.Metadata)
	s.log.InfoContext(ctx, "frontend connected")

	status, reason := s.readLoop(ctx, conn, local, remote)

	local.Disconnect()
	<-writerDone
	_ = conn.Close(status, reason)
	s.log.InfoContext(ctx, "frontend disconnected", slog.Int("status", int(status)))
}

// readLoop delivers text frames to the session until the socket fails or the
// session returns an error, and reports the close status to use.
func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, local inspector.LocalConnection, remote *socketRemote) (websocket.StatusCode, string) {
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if remote.overflowed() {
				return websocket.StatusPolicyViolation, "outbound queue overflow"
			}
			if st := websocket.CloseStatus(err); st != -1 {
				s.log.DebugContext(ctx, "frontend closed socket", slog.Int("status", int(st)))
			} else {
				s.log.DebugContext(ctx, "socket read failed", slog.String("err", err.Error()))
			}
			return websocket.StatusNormalClosure, ""
		}
		if typ != websocket.MessageText {
			s.log.WarnContext(ctx, "ignoring binary frame", slog.Int("len", len(data)))
			continue
		}
		if err := local.SendMessage(string(data)); err != nil {
			s.log.ErrorContext(ctx, "session failed", slog.String("err", err.Error()))
			return websocket.StatusInternalError, "internal error"
		}
	}
}

// socketRemote queues outbound messages for the socket's writer goroutine.
// OnMessage never blocks: when the queue is full the socket is marked as
// overflowed and the writer closes it.
type socketRemote struct {
	conn *websocket.Conn
	log  *slog.Logger

	mu       sync.Mutex
	out      chan string
	closed   bool
	overflow bool
}

func newSocketRemote(conn *websocket.Conn, size int, log *slog.Logger) *socketRemote {
	return &socketRemote{conn: conn, log: log, out: make(chan string, size)}
}

func (r *socketRemote) OnMessage(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.out <- message:
	default:
		r.overflow = true
		r.closed = true
		close(r.out)
	}
}

func (r *socketRemote) OnDisconnect() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.out)
}

func (r *socketRemote) overflowed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overflow
}

func (r *socketRemote) writeLoop(ctx context.Context, timeout time.Duration) {
	for msg := range r.out {
		if r.overflowed() {
			break
		}
		wctx, cancel := context.WithTimeout(ctx, timeout)
		err := r.conn.Write(wctx, websocket.MessageText, []byte(msg))
		cancel()
		if err != nil {
			r.log.DebugContext(ctx, "socket write failed", slog.String("err", err.Error()))
		}
	}
	if r.overflowed() {
		r.log.WarnContext(ctx, "outbound queue overflow; closing socket")
		_ = r.conn.Close(websocket.StatusPolicyViolation, "outbound queue overflow")
	}
}
