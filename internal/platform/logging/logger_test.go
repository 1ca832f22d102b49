package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]Level{
		"debug":   LevelDebug,
		" WARN ":  LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("dataset", "shots")

	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: trace.TraceID{1},
		SpanID:  trace.SpanID{2},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)
	logger.WarnContext(ctx, "row skipped", "row", 4, "error", errors.New("bad cell"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["dataset"] != "shots" || fields["row"] != int64(4) || fields["error"] != "bad cell" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("key without value should still be logged: %+v", fields)
	}
	if fields["trace_id"] != spanCtx.TraceID().String() || fields["span_id"] != spanCtx.SpanID().String() {
		t.Fatalf("missing trace fields: %+v", fields)
	}
}

func TestLogger_MirrorSeesEnabledEntriesOnly(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, _ ...any) {
		got = append(got, level.String()+":"+msg)
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("dropped")
	logger.Info("kept")
	logger.ErrorContext(context.Background(), "failed")

	if len(got) != 2 || got[0] != "info:kept" || got[1] != "error:failed" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}
}

func TestLogger_NilUsesDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("With on nil logger should return a usable logger")
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
