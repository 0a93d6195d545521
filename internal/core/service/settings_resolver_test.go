package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeSource struct {
	value string
	ok    bool
	err   error
	calls int
}

func (f *fakeSource) Lookup(_ context.Context, _ string) (string, bool, error) {
	f.calls++
	return f.value, f.ok, f.err
}

func TestSettingsResolver_FirstOpinionWins(t *testing.T) {
	first := &fakeSource{value: "from-store", ok: true}
	second := &fakeSource{value: "from-env", ok: true}
	r := NewSettingsResolver(zerolog.Nop(), first, second)

	if got := r.Resolve(context.Background(), WebviewURLKey); got != "from-store" {
		t.Fatalf("expected from-store, got %q", got)
	}
	if second.calls != 0 {
		t.Fatalf("later sources must not be consulted after a hit")
	}
}

func TestSettingsResolver_FallsThroughDeclines(t *testing.T) {
	first := &fakeSource{ok: false}
	second := &fakeSource{value: "fallback", ok: true}
	r := NewSettingsResolver(zerolog.Nop(), first, second)

	if got := r.Resolve(context.Background(), WebviewURLKey); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestSettingsResolver_FallsThroughErrors(t *testing.T) {
	broken := &fakeSource{err: errors.New("store unreachable")}
	last := &fakeSource{value: "last-resort", ok: true}
	r := NewSettingsResolver(zerolog.Nop(), broken, last)

	if got := r.Resolve(context.Background(), WebviewURLKey); got != "last-resort" {
		t.Fatalf("a broken source must not fail resolution, got %q", got)
	}
}

func TestSettingsResolver_NoOpinionAnywhere(t *testing.T) {
	r := NewSettingsResolver(zerolog.Nop(), &fakeSource{}, &fakeSource{})

	if got := r.Resolve(context.Background(), WebviewURLKey); got != "" {
		t.Fatalf("expected empty value, got %q", got)
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("WEBVIEW_URL", "https://env.example.com")

	value, ok, err := (EnvSource{}).Lookup(context.Background(), WebviewURLKey)
	if err != nil || !ok {
		t.Fatalf("expected env hit, ok=%t err=%v", ok, err)
	}
	if value != "https://env.example.com" {
		t.Fatalf("unexpected value: %q", value)
	}
}

func TestEnvSource_Unset(t *testing.T) {
	t.Setenv("WEBVIEW_URL", "")

	_, ok, err := (EnvSource{}).Lookup(context.Background(), WebviewURLKey)
	if err != nil || ok {
		t.Fatalf("expected decline for unset variable, ok=%t err=%v", ok, err)
	}
}

func TestDefaultWebviewSource(t *testing.T) {
	src := NewDefaultWebviewSource("9090")

	value, ok, _ := src.Lookup(context.Background(), WebviewURLKey)
	if !ok {
		t.Fatalf("default source must always answer for its key")
	}
	if value != "http://localhost:9090/webview" {
		t.Fatalf("unexpected value: %q", value)
	}

	if _, ok, _ := src.Lookup(context.Background(), "other_key"); ok {
		t.Fatalf("default source must decline foreign keys")
	}
}
