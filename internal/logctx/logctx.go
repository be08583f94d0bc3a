package logctx

import (
	"context"
	"log/slog"
)

// Handler enriches records with the connection, session and message data
// carried on the context.
type Handler struct {
	slog.Handler
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	if cd, ok := ctx.Value(connDataKey{}).(*ConnData); ok {
		r.AddAttrs(slog.Group("conn",
			slog.String("transport", cd.Transport),
			slog.String("remote_addr", cd.RemoteAddr),
			slog.String("page_id", cd.PageID),
		))
	}

	if sd, ok := ctx.Value(sessionDataKey{}).(*SessionData); ok {
		r.AddAttrs(slog.Group("sess",
			slog.String("id", sd.SessionID),
			slog.String("integration", sd.IntegrationName),
		))
	}

	if msg, ok := ctx.Value(cdpMsgKey{}).(*CDPMessage); ok {
		r.AddAttrs(slog.Group("cdp",
			slog.String("method", msg.Method),
			slog.String("id", msg.ID),
		))
	}

	return h.Handler.Handle(ctx, r)
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h Handler) WithGroup(name string) slog.Handler {
	return Handler{Handler: h.Handler.WithGroup(name)}
}

type cdpMsgKey struct{}

type CDPMessage struct {
	Method string
	ID     string
}

func WithCDPMessage(ctx context.Context, msg *CDPMessage) context.Context {
	return context.WithValue(ctx, cdpMsgKey{}, msg)
}

type connDataKey struct{}

type ConnData struct {
	Transport  string
	RemoteAddr string
	PageID     string
}

func WithConnData(ctx context.Context, data *ConnData) context.Context {
	return context.WithValue(ctx, connDataKey{}, data)
}

type sessionDataKey struct{}

type SessionData struct {
	SessionID       string
	IntegrationName string
}

func WithSessionData(ctx context.Context, data *SessionData) context.Context {
	return context.WithValue(ctx, sessionDataKey{}, data)
}
