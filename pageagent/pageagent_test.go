package pageagent

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ggoodman/devtools-bridge/cdp"
	"github.com/ggoodman/devtools-bridge/inspector"
)

type fakeRemote struct {
	mu       sync.Mutex
	messages []string
}

func (r *fakeRemote) OnMessage(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *fakeRemote) OnDisconnect() {}

func (r *fakeRemote) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func connect(t *testing.T, opts ...Option) (inspector.LocalConnection, *fakeRemote) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts = append(opts, WithLogger(log))
	target := inspector.NewTarget(Factory(opts...), inspector.WithLogger(log))
	remote := &fakeRemote{}
	local := target.Connect(remote, inspector.SessionMetadata{IntegrationName: "demo"})
	t.Cleanup(local.Disconnect)
	return local, remote
}

func TestUnsupportedMethod(t *testing.T) {
	local, remote := connect(t)
	if err := local.SendMessage(`{"id":9,"method":"Nope.nothing"}`); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	want := `{"id":9,"error":{"code":-32601,"message":"Unsupported method 'Nope.nothing'"}}`
	if got := remote.snapshot(); len(got) != 1 || got[0] != want {
		t.Fatalf("got %v, want %s", got, want)
	}
}

func TestRegisteredHandler(t *testing.T) {
	local, remote := connect(t, WithHandler("Runtime.enable", Result(nil)))
	if err := local.SendMessage(`{"id":1,"method":"Runtime.enable"}`); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if got := remote.snapshot(); len(got) != 1 || got[0] != `{"id":1,"result":{}}` {
		t.Fatalf("got %v", got)
	}
}

func TestLogEnable(t *testing.T) {
	local, remote := connect(t, WithHandler("Log.enable", LogEnable()))
	if err := local.SendMessage(`{"id":2,"method":"Log.enable"}`); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	got := remote.snapshot()
	if len(got) != 2 {
		t.Fatalf("expected reply and event, got %v", got)
	}
	if got[0] != `{"id":2,"result":{}}` {
		t.Fatalf("reply = %s", got[0])
	}
	want := `{"method":"Log.entryAdded","params":{"entry":{"level":"info","source":"other","text":"Debugger attached via demo"}}}`
	if got[1] != want {
		t.Fatalf("event = %s, want %s", got[1], want)
	}
}

func TestHandlerFieldTypeError(t *testing.T) {
	local, remote := connect(t, WithHandler("Page.navigate", func(ch inspector.FrontendChannel, _ inspector.SessionMetadata, req cdp.PreparsedRequest) error {
		url, err := req.Params.String("url")
		if err != nil {
			return err
		}
		return ch.SendResult(req.ID, map[string]string{"url": url})
	}))

	if err := local.SendMessage(`{"id":3,"method":"Page.navigate","params":{"url":5}}`); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	want := `{"id":3,"error":{"code":-32600,"message":"params.url: expected string, got number"}}`
	if got := remote.snapshot(); len(got) != 1 || got[0] != want {
		t.Fatalf("got %v, want %s", got, want)
	}
}

func TestHandlerFatalError(t *testing.T) {
	boom := errors.New("boom")
	local, _ := connect(t, WithHandler("Debugger.pause", func(inspector.FrontendChannel, inspector.SessionMetadata, cdp.PreparsedRequest) error {
		return boom
	}))
	if err := local.SendMessage(`{"id":4,"method":"Debugger.pause"}`); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestCloseHooksRunOnDisconnect(t *testing.T) {
	closed := 0
	local, _ := connect(t, WithCloseHook(func() { closed++ }))
	local.Disconnect()
	if closed != 1 {
		t.Fatalf("close hook ran %d times", closed)
	}
}
