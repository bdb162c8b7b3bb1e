// Package cli is the rtc command line driver. It expands its arguments
// into template files, compiles them concurrently and reports the results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/vcrobe/rtc/compiler"
	"github.com/vcrobe/rtc/log"
)

// Version is reported by --version.
var Version = "0.5.0"

// CLI is the rtc command line.
type CLI struct {
	Log     logConfig     `embed:"" group:"log" prefix:"log-"`
	Profile profileConfig `embed:"" group:"profile" prefix:"profile-"`

	Config  kong.ConfigFlag  `help:"Load flag defaults from a YAML file."`
	Version kong.VersionFlag `help:"Print the version and exit."`

	Files []string `arg:"" optional:"" help:"Template files, directories or glob patterns to compile."`

	Modules                 string        `enum:",${modules}" default:"" short:"m" help:"Module convention of the output (${enum})."`
	Name                    string        `help:"Variable name of the render function for the 'none' convention. Defaults to the file name."`
	TargetVersion           string        `enum:"${targetVersions}" default:"${targetVersion}" short:"t" help:"React version to generate code for."`
	ListTargetVersion       bool          `help:"Print the supported React versions and exit."`
	Native                  bool          `help:"Render React Native components."`
	NativeTargetVersion     string        `enum:"${nativeTargetVersions}" default:"${nativeTargetVersion}" help:"React Native version to generate code for."`
	ReactImportPath         string        `help:"Module path React is imported from."`
	LodashImportPath        string        `default:"lodash" help:"Module path lodash is imported from."`
	NormalizeHTMLWhitespace bool          `name:"normalize-html-whitespace" help:"Collapse whitespace runs in text like a browser."`
	Flow                    bool          `help:"Add a flow type checking header."`
	PropTemplates           propTemplates `help:"Render callback props per tag and child, as YAML or JSON."`
	Format                  string        `enum:"stylish,json" default:"stylish" short:"f" help:"Report format (${enum})."`
	Force                   bool          `help:"Compile files whose output is newer than the template."`
	Jobs                    int           `default:"${jobs}" short:"j" help:"Number of files compiled in parallel."`
	Scaffold                bool          `help:"With the typescript convention, also write a .tsx component that renders the template."`
}

func vars() kong.Vars {
	modules := make([]string, 0, len(compiler.AllModules))
	for _, m := range compiler.AllModules {
		if m != compiler.ModulesJSRT {
			modules = append(modules, string(m))
		}
	}
	return kong.Vars{
		"version":              Version,
		"modules":              strings.Join(modules, ","),
		"targetVersions":       strings.Join(compiler.TargetVersions, ","),
		"targetVersion":        compiler.DefaultTargetVersion,
		"nativeTargetVersions": strings.Join(compiler.NativeTargetVersions, ","),
		"nativeTargetVersion":  compiler.DefaultNativeTargetVersion,
		"jobs":                 fmt.Sprint(runtime.NumCPU()),
	}.CloneWith(profileConfig{}.vars())
}

// ErrFailed is returned by Run when a file failed to compile. The failures
// are in the report.
var ErrFailed = errors.New("some templates failed to compile")

// Run executes the command line in args. Reports go to stdout, logs to
// stderr. exit is called by --help and --version and on usage errors.
func Run(ctx context.Context, exit func(int), stdout, stderr io.Writer, args ...string) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("rtc"),
		kong.Description("Compile rt templates into React render functions."),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups([]kong.Group{cli.Log.group(), cli.Profile.group()}),
		kong.Configuration(loadConfig, configFile, "~/"+configFile),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
		vars(),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cli.Log.start(stderr)
	defer cli.Profile.start()()

	return cli.run(ctx, stdout)
}

func (c *CLI) run(ctx context.Context, stdout io.Writer) error {
	if c.ListTargetVersion {
		return printVersions(stdout, c.Format, compiler.TargetVersions)
	}
	if len(c.Files) == 0 {
		return fmt.Errorf("no template files given")
	}

	files, err := expandInputs(c.Files)
	if err != nil {
		return err
	}
	log.DebugContext(ctx, "expanded inputs", slog.Int("files", len(files)))

	results := compileAll(ctx, files, c.job(), c.Jobs)

	report := stylishReport
	if c.Format == "json" {
		report = jsonReport
	}
	if err := report(stdout, results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	s := summarize(results)
	log.InfoContext(ctx, "done",
		slog.Int("compiled", s.compiled),
		slog.Int("skipped", s.skipped),
		slog.Int("failed", s.failed),
	)
	if s.failed > 0 {
		return ErrFailed
	}
	return nil
}

// job returns the per-file settings described by the flags.
func (c *CLI) job() job {
	opts := compiler.DefaultOptions()
	opts.Modules = compiler.Modules(c.Modules)
	opts.Name = c.Name
	opts.TargetVersion = c.TargetVersion
	opts.Native = c.Native
	opts.NativeTargetVersion = c.NativeTargetVersion
	opts.ReactImportPath = c.ReactImportPath
	opts.LodashImportPath = c.LodashImportPath
	opts.NormalizeHTMLWhitespace = c.NormalizeHTMLWhitespace
	opts.Flow = c.Flow
	opts.PropTemplates = c.PropTemplates
	return job{opts: opts, force: c.Force, scaffold: c.Scaffold}
}
