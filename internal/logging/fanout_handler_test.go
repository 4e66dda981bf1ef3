package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Fatalf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerSingleHandlerUnwrapped(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsLevels(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := newFanoutHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected debug to be disabled")
	}

	logger := slog.New(h)
	logger.Info("info message")
	if infoBuf.Len() == 0 {
		t.Fatal("expected info output")
	}
	if warnBuf.Len() != 0 {
		t.Fatalf("expected warn handler to skip info, got %s", warnBuf.String())
	}

	logger.Warn("warn message")
	if warnBuf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}

func TestTeeLoggerCarriesAttrs(t *testing.T) {
	var baseBuf, fileBuf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&baseBuf, nil))
	logger := TeeLogger(base, slog.NewJSONHandler(&fileBuf, nil)).With(slog.String(FieldFile, "a.csv"))

	logger.Info("imported")

	for name, buf := range map[string]*bytes.Buffer{"base": &baseBuf, "tee": &fileBuf} {
		if !bytes.Contains(buf.Bytes(), []byte(`"file":"a.csv"`)) {
			t.Fatalf("expected file attribute in %s output, got %s", name, buf.String())
		}
	}
}

func TestCounterCountsThroughTee(t *testing.T) {
	counter := NewCounter(slog.LevelWarn)
	logger := TeeLogger(NewNop(), counter).With(String("session", "s01"))

	logger.Info("ignored")
	logger.Warn("first")
	logger.WithGroup("g").Error("second")

	if got := counter.Count(); got != 2 {
		t.Fatalf("expected 2 counted records, got %d", got)
	}
}
