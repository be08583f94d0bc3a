// Command devtools-bridge exposes an inspector target to Chrome DevTools
// Protocol frontends, over HTTP/WebSocket or over stdio.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ggoodman/devtools-bridge/devtools"
	"github.com/ggoodman/devtools-bridge/inspector"
	"github.com/ggoodman/devtools-bridge/internal/logctx"
	"github.com/ggoodman/devtools-bridge/internal/metrics"
	"github.com/ggoodman/devtools-bridge/pageagent"
	"github.com/ggoodman/devtools-bridge/stdio"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", slog.String("err", err.Error()))
		os.Exit(2)
	}

	// stdout carries protocol traffic in stdio mode, so logs go to stderr.
	log := slog.New(logctx.Handler{Handler: slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.level()})})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("devtools-bridge exited", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	target := inspector.NewTarget(pageagent.Factory(
		pageagent.WithLogger(log),
		pageagent.WithHandler("Log.enable", pageagent.LogEnable()),
		pageagent.WithHandler("Log.disable", pageagent.Result(nil)),
		pageagent.WithHandler("Runtime.enable", pageagent.Result(nil)),
		pageagent.WithHandler("Runtime.disable", pageagent.Result(nil)),
	), inspector.WithLogger(log))

	meta := inspector.SessionMetadata{IntegrationName: cfg.IntegrationName}

	if cfg.Mode == "stdio" {
		opts := []stdio.Option{stdio.WithLogger(log)}
		if meta.IntegrationName != "" {
			opts = append(opts, stdio.WithSessionMetadata(meta))
		}
		return stdio.NewHandler(target, opts...).Serve(ctx)
	}

	metrics.Register(prometheus.DefaultRegisterer)

	srv := devtools.NewServer(
		devtools.WithLogger(log),
		devtools.WithOutboxSize(cfg.OutboxSize),
	)
	pageID, err := srv.AddPage(devtools.Page{
		ID:       cfg.PageID,
		Title:    cfg.PageTitle,
		Target:   target,
		Metadata: meta,
	})
	if err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/metrics", promhttp.Handler())
	r.Mount("/", srv)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", slog.String("addr", cfg.Addr), slog.String("page_id", pageID))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}
