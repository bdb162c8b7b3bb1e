package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type prettyStyles struct {
	time, key, value, msg lipgloss.Style
	levels                map[slog.Level]lipgloss.Style
}

func newPrettyStyles(r *lipgloss.Renderer) prettyStyles {
	level := func(color string) lipgloss.Style {
		return r.NewStyle().Bold(true).Width(5).Foreground(lipgloss.Color(color))
	}
	return prettyStyles{
		time:  r.NewStyle().Faint(true),
		key:   r.NewStyle().Foreground(lipgloss.Color("8")),
		value: r.NewStyle().Foreground(lipgloss.Color("6")),
		msg:   r.NewStyle().Bold(true),
		levels: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: level("4"),
			slog.LevelInfo:  level("2"),
			slog.LevelWarn:  level("3"),
			slog.LevelError: level("1"),
		},
	}
}

func (s prettyStyles) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return s.levels[slog.LevelError]
	case l >= slog.LevelWarn:
		return s.levels[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return s.levels[slog.LevelInfo]
	}
	return s.levels[slog.LevelDebug]
}

// prettyHandler writes one styled line per record:
//
//	15:04:05 INFO  compiled file=a.rt
//
// Colors follow the terminal capabilities of the output, so redirected
// output is plain text.
type prettyHandler struct {
	opts       slog.HandlerOptions
	timeLayout string
	styles     prettyStyles
	mu         *sync.Mutex
	w          io.Writer
	prefix     string // group prefix of attribute keys
	attrs      string // preformatted attributes from WithAttrs
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions, timeLayout string) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		timeLayout: timeLayout,
		styles:     newPrettyStyles(lipgloss.NewRenderer(w)),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if h.timeLayout != "" && !r.Time.IsZero() {
		buf.WriteString(h.styles.time.Render(r.Time.Format(h.timeLayout)))
		buf.WriteByte(' ')
	}
	buf.WriteString(h.styles.level(r.Level).Render(r.Level.String()))
	buf.WriteByte(' ')
	buf.WriteString(h.styles.msg.Render(r.Message))
	buf.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	for _, a := range attrs {
		h.writeAttr(&buf, h.prefix, a)
	}
	c := *h
	c.attrs += buf.String()
	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix += name + "."
	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, g := range a.Value.Group() {
			h.writeAttr(buf, prefix, g)
		}
		return
	}
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\n\"") {
		val = strconv.Quote(val)
	}
	buf.WriteByte(' ')
	buf.WriteString(h.styles.key.Render(prefix + a.Key + "="))
	buf.WriteString(h.styles.value.Render(val))
}
