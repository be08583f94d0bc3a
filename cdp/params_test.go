package cdp

import (
	"errors"
	"testing"
)

func TestParamsAccessors(t *testing.T) {
	p := Params(`{"url":"https://x.test/a\"b","line":12,"ratio":0.5,"enabled":true,"loc":{"col":4},"none":null}`)

	if s, err := p.String("url"); err != nil || s != `https://x.test/a"b` {
		t.Fatalf("String(url) = %q, %v", s, err)
	}
	if n, err := p.Int("line"); err != nil || n != 12 {
		t.Fatalf("Int(line) = %d, %v", n, err)
	}
	if f, err := p.Float("ratio"); err != nil || f != 0.5 {
		t.Fatalf("Float(ratio) = %v, %v", f, err)
	}
	if b, err := p.Bool("enabled"); err != nil || !b {
		t.Fatalf("Bool(enabled) = %v, %v", b, err)
	}
	if n, err := p.Int("loc", "col"); err != nil || n != 4 {
		t.Fatalf("Int(loc.col) = %d, %v", n, err)
	}
	loc, err := p.Object("loc")
	if err != nil {
		t.Fatalf("Object(loc): %v", err)
	}
	if !loc.Has("col") || loc.Has("row") {
		t.Fatalf("unexpected Has results on %s", loc)
	}
	if s, err := p.OptionalString("dflt", "none"); err != nil || s != "dflt" {
		t.Fatalf("OptionalString(none) = %q, %v", s, err)
	}
	if n, err := p.OptionalInt(9, "absent"); err != nil || n != 9 {
		t.Fatalf("OptionalInt(absent) = %d, %v", n, err)
	}
}

func TestParamsTypeErrors(t *testing.T) {
	p := Params(`{"url":42,"line":"twelve","ratio":1.5}`)

	cases := []struct {
		name      string
		read      func() error
		wantField string
		wantGot   string
	}{
		{name: "string from number", read: func() error { _, err := p.String("url"); return err }, wantField: "params.url", wantGot: "number"},
		{name: "int from string", read: func() error { _, err := p.Int("line"); return err }, wantField: "params.line", wantGot: "string"},
		{name: "int from fraction", read: func() error { _, err := p.Int("ratio"); return err }, wantField: "params.ratio", wantGot: "number"},
		{name: "missing", read: func() error { _, err := p.Bool("enabled"); return err }, wantField: "params.enabled", wantGot: "missing"},
		{name: "optional wrong type", read: func() error { _, err := p.OptionalInt(0, "line"); return err }, wantField: "params.line", wantGot: "string"},
		{name: "optional string from number", read: func() error { _, err := p.OptionalString("", "url"); return err }, wantField: "params.url", wantGot: "number"},
		{name: "nil params", read: func() error { _, err := Params(nil).String("url"); return err }, wantField: "params", wantGot: "missing"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read()
			var typeErr *TypeError
			if !errors.As(err, &typeErr) {
				t.Fatalf("expected *TypeError, got %T: %v", err, err)
			}
			if typeErr.Field != tc.wantField || typeErr.Actual != tc.wantGot {
				t.Fatalf("got field=%q actual=%q", typeErr.Field, typeErr.Actual)
			}
		})
	}
}

func TestParamsStringAcceptsLoneSurrogate(t *testing.T) {
	p := Params(`{"text":"a\ud800b"}`)
	s, err := p.String("text")
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if s != "a\uFFFDb" {
		t.Fatalf("String = %q, want replacement character", s)
	}
}
