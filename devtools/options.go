package devtools

import (
	"log/slog"
	"time"
)

// Option customizes a Server.
type Option func(*Server)

// WithLogger overrides the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBrowser sets the browser name reported by /json/version.
func WithBrowser(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.browser = name
		}
	}
}

// WithOutboxSize bounds the number of outbound messages queued per socket.
func WithOutboxSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.outboxSize = n
		}
	}
}

// WithReadLimit bounds the size of one inbound message in bytes.
func WithReadLimit(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.readLimit = n
		}
	}
}

// WithWriteTimeout bounds how long a single outbound write may take.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.writeTimeout = d
		}
	}
}

// WithOriginPatterns lists the origins, besides the server's own host, that
// may open sockets (see websocket.AcceptOptions.OriginPatterns).
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.originPatterns = append(s.originPatterns, patterns...)
	}
}

// WithCORSOrigins lists the origins allowed to read the discovery endpoints.
// Default "*".
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}
