package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	l := Make(nil)
	if l.Level() != LevelInfo {
		t.Errorf("Expected default level info, got %v", l.Level())
	}
	if l.format != FormatText || l.pretty {
		t.Errorf("Expected plain text format, got %v pretty=%v", l.format, l.pretty)
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithLevel(LevelWarn), WithTimeLayout(""))
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Expected info to be filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("Expected warn record, got %q", buf.String())
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithFormat(FormatJSON), WithTimeLayout(""))
	l.LogAttrs(t.Context(), slog.LevelInfo, "compiled", slog.String("file", "a.rt"))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("Expected a JSON record, got %q: %v", buf.String(), err)
	}
	if rec["msg"] != "compiled" || rec["file"] != "a.rt" || rec["level"] != "INFO" {
		t.Errorf("Unexpected record %v", rec)
	}
	if _, ok := rec["time"]; ok {
		t.Errorf("Expected no timestamp, got %v", rec["time"])
	}
}

func TestLogger_WrapKeepsOptions(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithFormat(FormatJSON)).Wrap(WithLevel(LevelDebug))
	if l.format != FormatJSON || l.Level() != LevelDebug {
		t.Errorf("Expected json at debug level, got %v at %v", l.format, l.Level())
	}
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	l := Make(&buf, WithPretty(true), WithTimeLayout(""))
	l.With(slog.String("job", "1")).WithGroup("in").
		LogAttrs(t.Context(), slog.LevelWarn, "skipped", slog.String("file", "my file.rt"))

	// output to a buffer has no terminal, so it is not colored
	want := "WARN  skipped job=1 in.file=\"my file.rt\"\n"
	if got := buf.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestParse(t *testing.T) {
	if l, err := ParseLevel("debug"); err != nil || l != LevelDebug {
		t.Errorf("Expected debug, got %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("Expected error for unknown level")
	}
	if f, err := ParseFormat("JSON"); err != nil || f != FormatJSON {
		t.Errorf("Expected json, got %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestConfig_ReplacesDefault(t *testing.T) {
	prev := Default()
	t.Cleanup(func() { defaultLog.Store(&prev) })

	var buf bytes.Buffer
	Config(WithOutput(&buf), WithLevel(LevelDebug), WithTimeLayout(""))
	Debug("hello", slog.Int("n", 2))
	if got := buf.String(); !strings.Contains(got, "msg=hello n=2") {
		t.Errorf("Expected debug record from default logger, got %q", got)
	}
}
