package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the styles of each part of a pretty record. Colors
// are dropped when the output is not a terminal.
type prettyStyles struct {
	time    lipgloss.Style
	caller  lipgloss.Style
	message lipgloss.Style
	key     lipgloss.Style
	value   lipgloss.Style
	levels  map[slog.Level]lipgloss.Style
}

func newPrettyStyles(w io.Writer) prettyStyles {
	r := lipgloss.NewRenderer(w)

	badge := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Width(5).Foreground(lipgloss.Color(color))
	}

	return prettyStyles{
		time:    r.NewStyle().Foreground(lipgloss.Color("8")),
		caller:  r.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		message: r.NewStyle(),
		key:     r.NewStyle().Foreground(lipgloss.Color("6")),
		value:   r.NewStyle(),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): badge("5"),
			slog.Level(LevelDebug): badge("4"),
			slog.Level(LevelInfo):  badge("2"),
			slog.Level(LevelWarn):  badge("3"),
			slog.Level(LevelError): badge("1"),
		},
	}
}

func (s prettyStyles) level(l slog.Level) lipgloss.Style {
	if style, ok := s.levels[l]; ok {
		return style
	}

	return s.message
}

// prettyHandler writes one styled line per record:
//
//	3:04PM WARN  lang/exec.go:88 call failed name=sum error="..."
type prettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	cfg    config
	styles prettyStyles
	attrs  []slog.Attr // Pre-formatted with prefix
	prefix string      // Group prefix of subsequent attributes
}

func newPrettyHandler(c config) *prettyHandler {
	return &prettyHandler{
		mu:     new(sync.Mutex),
		w:      c.output,
		cfg:    c,
		styles: newPrettyStyles(c.output),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var parts []string

	if !r.Time.IsZero() {
		if ts := h.cfg.formatTime(r.Time); ts != "" {
			parts = append(parts, h.styles.time.Render(ts))
		}
	}

	parts = append(parts, h.styles.level(r.Level).Render(levelLabel(r.Level)))

	if h.cfg.caller && r.PC != 0 {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		if frame.File != "" {
			loc := filepath.Base(filepath.Dir(frame.File)) + "/" +
				filepath.Base(frame.File) + ":" + strconv.Itoa(frame.Line)
			parts = append(parts, h.styles.caller.Render(loc))
		}
	}

	parts = append(parts, h.styles.message.Render(r.Message))

	for _, a := range h.attrs {
		parts = h.appendAttr(parts, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		parts = h.appendAttr(parts, h.prefix, a)

		return true
	})

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, line)

	return err
}

func (h *prettyHandler) appendAttr(parts []string, prefix string, a slog.Attr) []string {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return parts
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			parts = h.appendAttr(parts, prefix, ga)
		}

		return parts
	}

	return append(parts,
		h.styles.key.Render(prefix+a.Key)+"="+h.styles.value.Render(quote(a.Value)),
	)
}

// quote returns the text of v, quoted if it contains spaces, quotes or
// control characters.
func quote(v slog.Value) string {
	var s string

	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			s = err.Error()
		} else {
			s = fmt.Sprint(v.Any())
		}
	default:
		s = v.String()
	}

	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return r <= ' ' || r == '"' || r == '='
	}) {
		return strconv.Quote(s)
	}

	return s
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	clone := *h
	clone.attrs = append([]slog.Attr{}, h.attrs...)

	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = h.prefix + a.Key
		}

		clone.attrs = append(clone.attrs, a)
	}

	return &clone
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}
