package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// fixtureOptions is the options.yaml section of a golden archive.
type fixtureOptions struct {
	Modules                 string `yaml:"modules"`
	TargetVersion           string `yaml:"targetVersion"`
	Native                  bool   `yaml:"native"`
	NativeTargetVersion     string `yaml:"nativeTargetVersion"`
	NormalizeHTMLWhitespace bool   `yaml:"normalizeHtmlWhitespace"`
	Flow                    bool   `yaml:"flow"`
}

// TestGolden compiles testdata/*.txtar. Each archive holds input.rt and
// either output.js or an error file naming the expected error kind. Other
// files are served to rt-include. Output is compared before reformatting,
// so archives default to the jsrt convention.
func TestGolden(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no golden archives found")
	}
	for _, path := range paths {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			if err != nil {
				t.Fatalf("Failed to read archive: %v", err)
			}
			files := make(map[string]string)
			for _, f := range archive.Files {
				files[f.Name] = string(f.Data)
			}

			opts, err := fixtureOpts(files["options.yaml"])
			if err != nil {
				t.Fatalf("Failed to parse options.yaml: %v", err)
			}
			opts.ReadFile = func(name string) (string, error) {
				if text, ok := files[name]; ok {
					return text, nil
				}
				return "", fmt.Errorf("open %s: %w", name, fs.ErrNotExist)
			}

			got, err := Convert(files["input.rt"], opts)
			if want, ok := files["error"]; ok {
				kind := ErrorKind(strings.TrimSpace(want))
				if !errors.Is(err, kind) {
					t.Fatalf("Expected error of kind %s, got %v", kind, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Convert returned error: %v", err)
			}
			want := strings.TrimRight(files["output.js"], "\n")
			if diff := cmp.Diff(want, strings.TrimRight(got, "\n")); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func fixtureOpts(text string) (Options, error) {
	var fo fixtureOptions
	if strings.TrimSpace(text) != "" {
		if err := yaml.Unmarshal([]byte(text), &fo); err != nil {
			return Options{}, err
		}
	}
	opts := Options{
		Modules:                 Modules(fo.Modules),
		TargetVersion:           fo.TargetVersion,
		Native:                  fo.Native,
		NativeTargetVersion:     fo.NativeTargetVersion,
		NormalizeHTMLWhitespace: fo.NormalizeHTMLWhitespace,
		Flow:                    fo.Flow,
	}
	if opts.Modules == "" {
		opts.Modules = ModulesJSRT
	}
	return opts, nil
}
