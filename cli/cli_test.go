package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vcrobe/rtc/compiler"
)

// writeFiles creates files under dir and dates them an hour back, so
// outputs written by a run are newer.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	past := time.Now().Add(-time.Hour)
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatal(err)
		}
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	exit := func(code int) { t.Fatalf("unexpected exit %d: %s", code, stderr.String()) }
	err := Run(t.Context(), exit, &stdout, &stderr, args...)
	return stdout.String(), err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRun_CompilesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.rt":              `<div>{this.props.x}</div>`,
		"sub/b-c.rt":        `<span rt-scope="1 as n">{n}</span>`,
		"page.jsrt":         "var render = <template><p>hi</p></template>;\n",
		".hidden/x.rt":      `<div></div>`,
		"node_modules/y.rt": `<div></div>`,
		"notes.txt":         "not a template",
	})

	out, err := run(t, "--modules=commonjs", dir)
	if err != nil {
		t.Fatalf("Run returned error: %v\n%s", err, out)
	}
	for _, name := range []string{"a.rt.js", "sub/b-c.rt.js", "page.js"} {
		if !exists(filepath.Join(dir, name)) {
			t.Errorf("Expected output %s", name)
		}
	}
	for _, name := range []string{".hidden/x.rt.js", "node_modules/y.rt.js"} {
		if exists(filepath.Join(dir, name)) {
			t.Errorf("Expected %s to be skipped", name)
		}
	}
	if !strings.Contains(out, "✔ 3 files compiled, 0 up to date") {
		t.Errorf("Unexpected report:\n%s", out)
	}

	code, err := os.ReadFile(filepath.Join(dir, "a.rt.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(code), "module.exports = function") {
		t.Errorf("Expected a commonjs module, got:\n%s", code)
	}

	out, err = run(t, "--modules=commonjs", dir)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out, "✔ 0 files compiled, 3 up to date") {
		t.Errorf("Expected outputs to be up to date, got:\n%s", out)
	}

	out, err = run(t, "--modules=commonjs", "--force", filepath.Join(dir, "*.rt"))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out, "✔ 1 file compiled, 0 up to date") {
		t.Errorf("Expected forced glob compile, got:\n%s", out)
	}
}

func TestRun_JSONReport(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.rt": `<div><span rt-repeat="x"></span></div>`,
		"ok.rt":  `<div></div>`,
	})
	bad := filepath.Join(dir, "bad.rt")
	other := filepath.Join(dir, "notes.txt")

	out, err := run(t, "--format=json", bad, filepath.Join(dir, "ok.rt"), other)
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("Expected ErrFailed, got %v", err)
	}

	var reports []fileReport
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("Expected a JSON report, got %q: %v", out, err)
	}
	if len(reports) != 3 {
		t.Fatalf("Expected 3 file reports, got %d", len(reports))
	}
	byFile := map[string]fileReport{}
	for _, r := range reports {
		byFile[r.FilePath] = r
	}

	want := []message{{
		Level:       "ERROR",
		Kind:        string(compiler.ErrMalformedRepeat),
		Msg:         "rt-repeat invalid 'in' expression 'x'",
		Line:        1,
		Column:      6,
		StartOffset: 5,
		EndOffset:   25,
	}}
	if diff := cmp.Diff(want, byFile[bad].Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := byFile[filepath.Join(dir, "ok.rt")].Status; got != "compiled" {
		t.Errorf("Expected ok.rt to compile, got %s", got)
	}
	if msgs := byFile[other].Messages; len(msgs) != 1 || msgs[0].Msg != "invalid file, only handle rt/jsrt files" {
		t.Errorf("Expected unsupported file message, got %+v", msgs)
	}
}

func TestRun_StylishReportShowsContext(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"bad.rt": "<div>\n  <b rt-if=\"a;b\"></b>\n</div>"})

	out, err := run(t, filepath.Join(dir, "bad.rt"))
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("Expected ErrFailed, got %v", err)
	}
	for _, want := range []string{"     2:3  error  invalid if part 'a;b'", ">    2 |   <b", "✖ 1 problem"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in report:\n%s", want, out)
		}
	}
}

func TestRun_ConfigFileAndPropTemplates(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"list.rt":  `<List><Item><span>{item.name}</span></Item></List>`,
		"rtc.yaml": "modules: es6\nlodashImportPath: lodash-es\n",
	})

	_, err := run(t,
		"--config="+filepath.Join(dir, "rtc.yaml"),
		`--prop-templates={"List": {"Item": {"prop": "renderItem", "arguments": ["item"]}}}`,
		filepath.Join(dir, "list.rt"),
	)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	code, err := os.ReadFile(filepath.Join(dir, "list.rt.js"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"export default function", `from "lodash-es"`, "renderItem", "function renderItem1(item)"} {
		if !strings.Contains(string(code), want) {
			t.Errorf("Expected %q in output:\n%s", want, code)
		}
	}
}

func TestRun_TypeScriptScaffold(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"list-view.rt": `<div></div>`})

	if _, err := run(t, "--modules=typescript", "--scaffold", filepath.Join(dir, "list-view.rt")); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !exists(filepath.Join(dir, "list-view.rt.ts")) {
		t.Error("Expected typescript output")
	}
	tsx, err := os.ReadFile(filepath.Join(dir, "list-view.tsx"))
	if err != nil {
		t.Fatalf("Expected scaffold: %v", err)
	}
	for _, want := range []string{"import template from './list-view.rt';", "export default class ListView"} {
		if !strings.Contains(string(tsx), want) {
			t.Errorf("Expected %q in scaffold:\n%s", want, tsx)
		}
	}
}

func TestRun_ListTargetVersion(t *testing.T) {
	out, err := run(t, "--list-target-version", "--format=json")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	var versions []string
	if err := json.Unmarshal([]byte(out), &versions); err != nil {
		t.Fatalf("Expected JSON list, got %q", out)
	}
	if diff := cmp.Diff(compiler.TargetVersions, versions); diff != "" {
		t.Errorf("versions mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_NoFiles(t *testing.T) {
	if _, err := run(t); err == nil {
		t.Error("Expected an error without files")
	}
}
