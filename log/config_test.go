package log

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestApply_Options(t *testing.T) {
	cfg := apply(defaultConfig(nil),
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if cfg.level != LevelDebug {
		t.Errorf("level = %v, want %v", cfg.level, LevelDebug)
	}

	if cfg.format != FormatJSON {
		t.Errorf("format = %v, want %v", cfg.format, FormatJSON)
	}

	if !cfg.caller {
		t.Error("caller disabled, want enabled")
	}

	if cfg.pretty {
		t.Error("pretty enabled, want disabled")
	}
}

func TestApply_DoesNotModifyBase(t *testing.T) {
	base := defaultConfig(nil)
	_ = apply(base, WithLevel(LevelError))

	if base.level != DefaultLevel {
		t.Errorf("base level = %v, want %v", base.level, DefaultLevel)
	}
}

func TestWithOutput_Nil(t *testing.T) {
	cfg := apply(defaultConfig(&bytes.Buffer{}), WithOutput(nil))
	if cfg.output == nil {
		t.Fatal("nil output")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(slog.LevelInfo + 2)},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{" JSON ", FormatJSON},
		{"text", FormatText},
		{"xml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevels(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"trace", "debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestFormats(t *testing.T) {
	got := slices.Collect(Formats())
	want := []string{"text", "json"}

	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestLevel_String(t *testing.T) {
	if s := Level(3).String(); s != "Level(3)" {
		t.Errorf("Level(3).String() = %q", s)
	}

	if s := levelLabel(slog.Level(LevelTrace)); s != "TRACE" {
		t.Errorf("levelLabel(trace) = %q, want TRACE", s)
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"kitchen", "Kitchen", "2:07PM"},
		{"rfc3339", "RFC3339", "2024-03-05T14:07:09Z"},
		{"punctuation ignored", "rfc-3339", "2024-03-05T14:07:09Z"},
		{"datetime", "DateTime", "2024-03-05 14:07:09"},
		{"custom", "2006/01/02", "2024/03/05"},
		{"none", "none", ""},
		{"blank", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := makeFormatTimeFunc(tt.layout)(ts)
			if got != tt.want {
				t.Errorf("format(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_ReplaceAttr(t *testing.T) {
	cfg := apply(defaultConfig(nil), WithTimeLayout("none"))

	if a := cfg.replaceAttr(nil, slog.Time(slog.TimeKey, time.Now())); !a.Equal(slog.Attr{}) {
		t.Errorf("time attribute kept: %v", a)
	}

	a := cfg.replaceAttr(nil, slog.Any(slog.LevelKey, slog.Level(LevelTrace)))
	if a.Value.String() != "TRACE" {
		t.Errorf("level = %q, want TRACE", a.Value.String())
	}

	grouped := slog.String(slog.LevelKey, "x")
	if a := cfg.replaceAttr([]string{"g"}, grouped); !a.Equal(grouped) {
		t.Errorf("grouped attribute changed: %v", a)
	}
}

func TestConfig_Handler(t *testing.T) {
	tests := []struct {
		name   string
		opts   []Option
		prefix string
	}{
		{"pretty text", []Option{WithPretty(true)}, "WARN"},
		{"plain text", []Option{WithPretty(false)}, "level=WARN"},
		{"json ignores pretty", []Option{WithFormat(FormatJSON)}, `{"level":"WARN"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := append([]Option{WithTimeLayout("none")}, tt.opts...)
			Make(&buf, opts...).Warn("hello")

			if !strings.HasPrefix(buf.String(), tt.prefix) {
				t.Errorf("output = %q, want prefix %q", buf.String(), tt.prefix)
			}
		})
	}
}
