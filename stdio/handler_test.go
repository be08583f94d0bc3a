package stdio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/inspector"
	"github.com/ggoodman/devtools-bridge/pageagent"
)

type staticUser string

func (u staticUser) CurrentUserID() (string, error) { return string(u), nil }

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTarget(opts ...pageagent.Option) *inspector.Target {
	opts = append(opts,
		pageagent.WithHandler("Runtime.enable", pageagent.Result(nil)),
		pageagent.WithLogger(discardLogger()),
	)
	return inspector.NewTarget(pageagent.Factory(opts...), inspector.WithLogger(discardLogger()))
}

func TestServeAnswersLinesInOrder(t *testing.T) {
	in := strings.Join([]string{
		`not json`,
		``,
		`{"method":1}`,
		`{"id":1,"method":"Runtime.enable"}`,
		`{"id":2,"method":"Nope.nothing"}`,
	}, "\n") + "\n"
	var out bytes.Buffer

	h := NewHandler(newTarget(), WithIO(strings.NewReader(in), &out), WithLogger(discardLogger()), WithUserProvider(staticUser("tester")))
	if err := h.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}

	got := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(got) != 4 {
		t.Fatalf("expected 4 output lines, got %d: %q", len(got), got)
	}
	wantPrefixes := []string{
		`{"id":null,"error":{"code":-32700,`,
		`{"id":null,"error":{"code":-32600,`,
		`{"id":1,"result":{}}`,
		`{"id":2,"error":{"code":-32601,`,
	}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(got[i], p) {
			t.Fatalf("line %d = %s, want prefix %s", i, got[i], p)
		}
	}
}

func TestServeLabelsSessionWithUser(t *testing.T) {
	var seen inspector.SessionMetadata
	target := newTarget(pageagent.WithHandler("Whoami.get", func(ch inspector.FrontendChannel, meta inspector.SessionMetadata, req cdp.PreparsedRequest) error {
		seen = meta
		return ch.SendResult(req.ID, nil)
	}))

	var out bytes.Buffer
	h := NewHandler(target, WithIO(strings.NewReader(`{"id":1,"method":"Whoami.get"}`+"\n"), &out), WithLogger(discardLogger()), WithUserProvider(staticUser("tester")))
	if err := h.Serve(context.Background()); err != nil {
		t.Fatalf("Serve: %v", err)
	}
	if seen.IntegrationName != "stdio:tester" {
		t.Fatalf("integration = %q", seen.IntegrationName)
	}
}

func TestServeReturnsAgentFailure(t *testing.T) {
	boom := errors.New("boom")
	target := newTarget(pageagent.WithHandler("Debugger.pause", func(inspector.FrontendChannel, inspector.SessionMetadata, cdp.PreparsedRequest) error {
		return boom
	}))

	in := `{"id":1,"method":"Debugger.pause"}` + "\n" + `{"id":2,"method":"Runtime.enable"}` + "\n"
	var out bytes.Buffer
	h := NewHandler(target, WithIO(strings.NewReader(in), &out), WithLogger(discardLogger()), WithSessionMetadata(inspector.SessionMetadata{IntegrationName: "x"}))

	if err := h.Serve(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output after fatal error, got %q", out.String())
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	inR, inW := io.Pipe()
	t.Cleanup(func() { _ = inW.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	h := NewHandler(newTarget(), WithIO(inR, io.Discard), WithLogger(discardLogger()), WithUserProvider(staticUser("tester")))

	done := make(chan error, 1)
	go func() { done <- h.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("Serve did not return after cancel")
	}
}

func TestServeRejectsOversizedLine(t *testing.T) {
	in := `{"id":1,"method":"` + strings.Repeat("a", 128) + `"}` + "\n"
	h := NewHandler(newTarget(), WithIO(strings.NewReader(in), io.Discard), WithLogger(discardLogger()), WithMaxMessageSize(32), WithUserProvider(staticUser("tester")))
	if err := h.Serve(context.Background()); err == nil {
		t.Fatalf("expected read error for oversized line")
	}
}
