package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vcrobe/rtc/compiler"
)

const (
	rtExt   = ".rt"
	jsrtExt = ".jsrt"
)

// expandInputs turns the command line arguments into template paths.
// Directories are searched recursively for .rt and .jsrt files, skipping
// hidden directories and node_modules. Arguments with glob metacharacters
// are expanded. Other arguments are kept as given, so a missing or
// unsupported file is reported for that file.
func expandInputs(inputs []string) ([]string, error) {
	var files []string
	for _, in := range inputs {
		if strings.ContainsAny(in, "*?[") {
			matches, err := filepath.Glob(in)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", in, err)
			}
			files = append(files, matches...)
			continue
		}
		info, err := os.Stat(in)
		if err != nil || !info.IsDir() {
			files = append(files, in)
			continue
		}
		found, err := findTemplates(in)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

func findTemplates(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if path != root && (strings.HasPrefix(name, ".") || name == "node_modules") {
				return filepath.SkipDir
			}
			return nil
		}
		if ext := filepath.Ext(path); ext == rtExt || ext == jsrtExt {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", root, err)
	}
	return found, nil
}

// outputFor returns the file a template compiles into and the module
// convention it is compiled with.
func outputFor(file string, modules compiler.Modules) (string, compiler.Modules, error) {
	switch filepath.Ext(file) {
	case rtExt:
		if modules == compiler.ModulesTypeScript {
			return file + ".ts", modules, nil
		}
		return file + ".js", modules, nil
	case jsrtExt:
		return strings.TrimSuffix(file, jsrtExt) + ".js", compiler.ModulesJSRT, nil
	}
	return "", modules, fmt.Errorf("invalid file, only handle rt/jsrt files")
}

// templateName is the default variable name of the render function of
// file: its base name with dashes replaced, suffixed with RT.
func templateName(file string) string {
	base := filepath.Base(file)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ReplaceAll(base, "-", "_") + "RT"
}

// upToDate reports whether output exists and is newer than the template.
func upToDate(template, output string) bool {
	src, err := os.Stat(template)
	if err != nil {
		return false
	}
	dst, err := os.Stat(output)
	if err != nil {
		return false
	}
	return dst.ModTime().After(src.ModTime())
}

// scaffoldPath is the .tsx component written next to a typescript
// template: list.rt becomes list.tsx.
func scaffoldPath(file string) string {
	return strings.TrimSuffix(file, rtExt) + ".tsx"
}
