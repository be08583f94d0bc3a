package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joeshaw/envdecode"
)

// config is decoded from the environment.
type config struct {
	// Mode selects the transport: "http" (discovery + WebSocket) or "stdio".
	Mode string `env:"DEVTOOLS_BRIDGE_MODE,default=http"`
	// Addr is the listen address in http mode.
	Addr string `env:"DEVTOOLS_BRIDGE_ADDR,default=127.0.0.1:9229"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"DEVTOOLS_BRIDGE_LOG_LEVEL,default=info"`
	// PageTitle is the title of the advertised page.
	PageTitle string `env:"DEVTOOLS_BRIDGE_PAGE_TITLE,default=devtools-bridge"`
	// PageID fixes the page's socket path segment; generated when empty.
	PageID string `env:"DEVTOOLS_BRIDGE_PAGE_ID"`
	// IntegrationName is passed to every session's agent.
	IntegrationName string `env:"DEVTOOLS_BRIDGE_INTEGRATION_NAME"`
	// OutboxSize bounds queued outbound messages per socket.
	OutboxSize int `env:"DEVTOOLS_BRIDGE_OUTBOX_SIZE,default=1024"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return cfg, fmt.Errorf("decode environment: %w", err)
	}
	switch cfg.Mode {
	case "http", "stdio":
	default:
		return cfg, fmt.Errorf("unknown DEVTOOLS_BRIDGE_MODE %q", cfg.Mode)
	}
	return cfg, nil
}

func (c config) level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
