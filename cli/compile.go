package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iancoleman/strcase"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/rtc/compiler"
	"github.com/vcrobe/rtc/log"
)

// job holds the settings shared by every file of a run.
type job struct {
	opts     compiler.Options
	force    bool
	scaffold bool
}

type status int

const (
	statusCompiled status = iota
	statusSkipped
	statusFailed
)

// result is the outcome for one template file.
type result struct {
	File   string
	Output string
	Status status
	Err    error
}

// compileAll compiles files with at most jobs compilations running at once.
// Results are in the order of files.
func compileAll(ctx context.Context, files []string, j job, jobs int) []result {
	results := make([]result, len(files))
	var g errgroup.Group
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = result{File: file, Status: statusFailed, Err: err}
				return nil
			}
			results[i] = j.compile(ctx, file)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (j job) compile(ctx context.Context, file string) result {
	res := result{File: file, Status: statusFailed}
	output, modules, err := outputFor(file, j.opts.Modules)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = output

	if !j.force && upToDate(file, output) {
		log.DebugContext(ctx, "up to date", slog.String("file", file))
		res.Status = statusSkipped
		return res
	}

	start := time.Now()
	text, err := os.ReadFile(file)
	if err != nil {
		res.Err = fmt.Errorf("read template: %w", err)
		return res
	}

	opts := j.opts
	opts.Modules = modules
	if opts.Name == "" && (modules == compiler.ModulesNone || modules == "" && !opts.Native) {
		opts.Name = templateName(file)
	}
	opts.ReadFile = includeReader(filepath.Dir(file))

	var code string
	if modules == compiler.ModulesJSRT {
		code, err = compiler.ConvertJSRT(string(text), opts)
	} else {
		code, err = compiler.Convert(string(text), opts)
	}
	if err != nil {
		res.Err = err
		return res
	}
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		res.Err = fmt.Errorf("write output: %w", err)
		return res
	}
	if j.scaffold && modules == compiler.ModulesTypeScript {
		if err := j.writeScaffold(file); err != nil {
			res.Err = err
			return res
		}
	}

	log.DebugContext(ctx, "compiled",
		slog.String("file", file),
		slog.String("output", output),
		slog.Duration("took", time.Since(start)),
	)
	res.Status = statusCompiled
	return res
}

// includeReader resolves rt-include sources relative to the directory of
// the including template.
func includeReader(dir string) func(string) (string, error) {
	return func(src string) (string, error) {
		if !filepath.IsAbs(src) {
			src = filepath.Join(dir, src)
		}
		b, err := os.ReadFile(src)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

const scaffoldTemplate = `import template from './%s';
import * as React from 'react';

export default class %s extends React.Component<{}, {}> {
    render() { return template.call(this); }
}
`

// writeScaffold writes the .tsx component class for a typescript template.
// An existing component is kept unless the run is forced.
func (j job) writeScaffold(file string) error {
	path := scaffoldPath(file)
	if !j.force {
		if _, err := os.Stat(path); err == nil {
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("scaffold: %w", err)
		}
	}
	base := filepath.Base(file)
	class := strcase.ToCamel(strings.TrimSuffix(base, rtExt))
	content := fmt.Sprintf(scaffoldTemplate, base, class)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("scaffold: %w", err)
	}
	return nil
}
