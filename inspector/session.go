package inspector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/internal/logctx"
	"github.com/ggoodman/devtools-bridge/internal/metrics"
)

// session is the per-connection binding of a remote frontend to an agent.
type session struct {
	id      string
	ctx     context.Context
	log     *slog.Logger
	remote  *remoteHandle // sole strong reference
	channel FrontendChannel
	agent   Agent

	cleanup   runtime.Cleanup
	closeOnce sync.Once
}

func newSession(id string, remote RemoteConnection, meta SessionMetadata, newAgent AgentFactory, log *slog.Logger) *session {
	ctx := logctx.WithSessionData(context.Background(), &logctx.SessionData{
		SessionID:       id,
		IntegrationName: meta.IntegrationName,
	})
	s := &session{
		id:     id,
		ctx:    ctx,
		log:    log,
		remote: newRemoteHandle(remote),
	}
	s.channel = newFrontendChannel(s.remote)
	s.agent = newAgent(s.channel, meta)

	// A session dropped without Disconnect still releases its remote.
	s.cleanup = runtime.AddCleanup(s, releaseAbandoned, s.remote)

	metrics.SessionOpened()
	return s
}

func releaseAbandoned(h *remoteHandle) {
	if h.release() {
		metrics.SessionClosed()
	}
}

// handleMessage drives one inbound message through preparse, dispatch and
// error translation.
func (s *session) handleMessage(message string) error {
	req, err := cdp.Preparse([]byte(message))
	if err != nil {
		var parseErr *cdp.ParseError
		var typeErr *cdp.TypeError
		switch {
		case errors.As(err, &parseErr):
			s.replyError(s.ctx, nil, cdp.ErrorCodeParseError, parseErr.Error(), metrics.OutcomeParseError)
			return nil
		case errors.As(err, &typeErr):
			s.replyError(s.ctx, nil, cdp.ErrorCodeInvalidRequest, typeErr.Error(), metrics.OutcomeInvalidRequest)
			return nil
		default:
			metrics.RecordMessage(metrics.OutcomeFailed)
			return err
		}
	}

	ctx := logctx.WithCDPMessage(s.ctx, &logctx.CDPMessage{Method: req.Method, ID: req.ID.String()})
	if err := s.agent.HandleRequest(req); err != nil {
		var typeErr *cdp.TypeError
		if errors.As(err, &typeErr) {
			s.replyError(ctx, req.ID, cdp.ErrorCodeInvalidRequest, typeErr.Error(), metrics.OutcomeFieldTypeError)
			return nil
		}
		metrics.RecordMessage(metrics.OutcomeFailed)
		s.log.ErrorContext(ctx, "agent failed", slog.String("err", err.Error()))
		return fmt.Errorf("handle %s: %w", req.Method, err)
	}

	s.log.DebugContext(ctx, "request handled")
	metrics.RecordMessage(metrics.OutcomeHandled)
	return nil
}

func (s *session) replyError(ctx context.Context, id *cdp.RequestID, code cdp.ErrorCode, message, outcome string) {
	s.log.DebugContext(ctx, "replying with protocol error",
		slog.Int("code", int(code)),
		slog.String("message", message),
	)
	metrics.RecordMessage(outcome)
	metrics.RecordErrorReply(code.String())
	s.channel.SendError(id, code, message)
}

// close destroys the session: the agent first, then the remote.
func (s *session) close() {
	s.closeOnce.Do(func() {
		s.cleanup.Stop()
		if c, ok := s.agent.(io.Closer); ok {
			if err := c.Close(); err != nil {
				s.log.WarnContext(s.ctx, "agent close failed", slog.String("err", err.Error()))
			}
		}
		if s.remote.release() {
			metrics.SessionClosed()
		}
		s.log.DebugContext(s.ctx, "session closed")
	})
}
