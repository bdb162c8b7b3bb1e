package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vcrobe/rtc/compiler"
)

type summary struct {
	compiled, skipped, failed int
}

func summarize(results []result) summary {
	var s summary
	for _, r := range results {
		switch r.Status {
		case statusCompiled:
			s.compiled++
		case statusSkipped:
			s.skipped++
		case statusFailed:
			s.failed++
		}
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// message is one reported problem of a file.
type message struct {
	Level       string `json:"level"`
	Kind        string `json:"kind,omitempty"`
	Msg         string `json:"msg"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
}

func messageOf(err error) message {
	var ce *compiler.Error
	if !errors.As(err, &ce) {
		return message{Level: "ERROR", Msg: err.Error()}
	}
	return message{
		Level:       "ERROR",
		Kind:        string(ce.Kind),
		Msg:         ce.Message,
		Line:        ce.Line,
		Column:      ce.Column,
		StartOffset: ce.Start,
		EndOffset:   ce.End,
	}
}

// stylishReport lists failures grouped by file, then a summary line.
func stylishReport(w io.Writer, results []result) error {
	r := lipgloss.NewRenderer(w)
	var (
		file    = r.NewStyle().Underline(true)
		pos     = r.NewStyle().Faint(true).Width(8).Align(lipgloss.Right)
		level   = r.NewStyle().Foreground(lipgloss.Color("1"))
		failed  = r.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
		success = r.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	)

	var b strings.Builder
	for _, res := range results {
		if res.Status != statusFailed {
			continue
		}
		m := messageOf(res.Err)
		location := "-"
		if m.Line > 0 {
			location = fmt.Sprintf("%d:%d", m.Line, m.Column)
		}
		fmt.Fprintf(&b, "%s\n%s  %s  %s\n", file.Render(res.File), pos.Render(location), level.Render("error"), m.Msg)
		if ce := (*compiler.Error)(nil); errors.As(res.Err, &ce) {
			if lines := ce.Context(); lines != "" {
				b.WriteString(lines)
			}
		}
		b.WriteByte('\n')
	}

	s := summarize(results)
	if s.failed > 0 {
		b.WriteString(failed.Render(fmt.Sprintf("✖ %s", plural(s.failed, "problem"))))
	} else {
		b.WriteString(success.Render(fmt.Sprintf("✔ %s compiled, %d up to date", plural(s.compiled, "file"), s.skipped)))
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

type fileReport struct {
	FilePath string    `json:"filePath"`
	Output   string    `json:"output,omitempty"`
	Status   string    `json:"status"`
	Messages []message `json:"messages"`
}

var statusNames = map[status]string{
	statusCompiled: "compiled",
	statusSkipped:  "skipped",
	statusFailed:   "failed",
}

// jsonReport writes one entry per file with the position of any failure.
func jsonReport(w io.Writer, results []result) error {
	reports := make([]fileReport, len(results))
	for i, res := range results {
		reports[i] = fileReport{
			FilePath: res.File,
			Output:   res.Output,
			Status:   statusNames[res.Status],
			Messages: []message{},
		}
		if res.Err != nil {
			reports[i].Messages = append(reports[i].Messages, messageOf(res.Err))
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func printVersions(w io.Writer, format string, versions []string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}
	_, err := fmt.Fprintln(w, strings.Join(versions, ", "))
	return err
}
