package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != DefaultLevel {
		t.Errorf("level = %v, want %v", logger.Level(), DefaultLevel)
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("format = %v, want %v", logger.Format(), DefaultFormat)
	}

	if logger.caller != DefaultCaller || logger.pretty != DefaultPretty {
		t.Errorf("caller = %v, pretty = %v", logger.caller, logger.pretty)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace below debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"debug at info", LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{"info at info", LevelInfo, func(l Logger) { l.Info("m") }, true},
		{"warn at error", LevelError, func(l Logger) { l.Warn("m") }, false},
		{"error at warn", LevelWarn, func(l Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatJSON))
	ctx := context.Background()

	logger.TraceContext(ctx, "t")
	logger.DebugContext(ctx, "d")
	logger.InfoContext(ctx, "i")
	logger.WarnContext(ctx, "w")
	logger.ErrorContext(ctx, "e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), buf.String())
	}

	for i, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("line %d: %v", i, err)
		}

		if rec["level"] != want[i] {
			t.Errorf("line %d level = %v, want %s", i, rec["level"], want[i])
		}
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Warn("call failed", slog.String("name", "sum"), slog.Int("depth", 2))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["msg"] != "call failed" || rec["name"] != "sum" || rec["depth"] != 2.0 {
		t.Errorf("record = %v", rec)
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("time present with layout none: %v", rec)
	}
}

func TestLogger_Caller(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		want   string
		absent string
	}{
		{"pretty", []Option{WithCaller(true)}, "log/log_test.go:", ""},
		{"text", []Option{WithCaller(true), WithPretty(false)}, "log_test.go:", ""},
		{"disabled", []Option{WithPretty(false)}, "", "log_test.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, tt.opts...).Warn("here")

			if tt.want != "" && !strings.Contains(buf.String(), tt.want) {
				t.Errorf("output %q missing %q", buf.String(), tt.want)
			}

			if tt.absent != "" && strings.Contains(buf.String(), tt.absent) {
				t.Errorf("output %q contains %q", buf.String(), tt.absent)
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false), WithTimeLayout("none")).
		With(slog.String("file", "doc.qd"))
	logger.Warn("oops", slog.Int("line", 3))

	want := "level=WARN msg=oops file=doc.qd line=3\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	wrapped := base.Wrap(WithLevel(LevelInfo))

	if base.Level() != LevelError {
		t.Errorf("base level changed to %v", base.Level())
	}

	wrapped.Info("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("wrapped logger did not write to the base output: %q", buf.String())
	}
}

func TestLogger_Zero(t *testing.T) {
	var logger Logger

	logger.Error("dropped")
	logger.With(slog.String("k", "v")).Warn("dropped")

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero logger enabled")
	}

	if logger.Level() != DefaultLevel {
		t.Errorf("level = %v", logger.Level())
	}

	wrapped := logger.Wrap(WithLevel(LevelDebug))
	if wrapped.Level() != LevelDebug {
		t.Errorf("wrapped level = %v", wrapped.Level())
	}

	wrapped.Debug("discarded")
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))
	logger.Logger = logger.Logger.WithGroup("call")
	logger.Warn("failed",
		slog.String("name", "sum"),
		slog.String("source", ".sum {1} {x}"),
		slog.Any("error", errors.New("not numeric")),
		slog.Group("pos", slog.Int("line", 1)),
	)

	out := buf.String()
	for _, want := range []string{
		"WARN ",
		"failed",
		"call.name=sum",
		`call.source=".sum {1} {x}"`,
		`call.error="not numeric"`,
		"call.pos.line=1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	if !strings.HasSuffix(out, "\n") || strings.Count(out, "\n") != 1 {
		t.Errorf("output is not a single line: %q", out)
	}
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer

	h := newPrettyHandler(apply(defaultConfig(&buf), WithTimeLayout("none")))
	slog.New(h.WithGroup("g").WithAttrs([]slog.Attr{slog.Int("a", 1)})).
		Warn("m", slog.String("empty", ""))

	out := buf.String()
	if !strings.Contains(out, "g.a=1") || !strings.Contains(out, `g.empty=""`) {
		t.Errorf("output = %q", out)
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelInfo))

	var wg sync.WaitGroup

	for range 16 {
		wg.Go(func() {
			for range 10 {
				logger.Info("message")
			}
		})
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 160 {
		t.Errorf("got %d lines, want 160", n)
	}
}
