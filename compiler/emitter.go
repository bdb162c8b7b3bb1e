package compiler

import (
	"fmt"
	"strings"

	"github.com/vcrobe/rtc/js"
)

const flowHeader = "/* @flow */\n"

// renderFunction is the function the module exports: the hoisted functions
// followed by the render expression. Stateless templates receive props and
// context as arguments.
func renderFunction(body js.Expr, reg *registry) js.Func {
	fn := js.Func{Body: append(append([]js.Stmt(nil), reg.funcs...), js.Return{X: orNull(body)})}
	if reg.stateless {
		fn.Params = []string{"props", "context"}
	}
	return fn
}

// emitModule wraps the render function in the module convention of opts and
// normalizes the result. Normalizing drops comments, so the flow header is
// added afterwards.
func emitModule(body js.Expr, reg *registry, opts *Options) (string, error) {
	fn := js.Print(renderFunction(body, reg))
	code := wrapModule(opts.Modules, opts.Name, fn, reg.defines)
	if opts.Modules != ModulesTypeScript && opts.Modules != ModulesJSRT {
		normalized, err := js.Normalize(code)
		if err != nil {
			return "", &Error{Kind: ErrInvalidExpression, Message: "generated code does not parse: " + err.Error(), Err: err}
		}
		code = normalized
	}
	if opts.Flow {
		code = addFlowHeader(opts.Modules, code)
	}
	return code, nil
}

// addFlowHeader marks code for the flow type checker. The header follows
// the strict mode directive of a commonjs module.
func addFlowHeader(modules Modules, code string) string {
	switch modules {
	case ModulesJSRT:
		return code
	case ModulesCommonJS:
		if i := strings.IndexByte(code, '\n'); i >= 0 {
			return code[:i+1] + flowHeader + code[i+1:]
		}
	}
	return flowHeader + code
}

// wrapModule renders the module text for one convention.
func wrapModule(modules Modules, name, fn string, defines []Define) string {
	switch modules {
	case ModulesAMD:
		return amdModule(name, fn, defines)
	case ModulesCommonJS:
		return "'use strict';\n" + importLines(modules, defines) + "\nmodule.exports = " + fn + ";\n"
	case ModulesES6:
		return importLines(modules, defines) + "\nexport default " + fn + "\n"
	case ModulesTypeScript:
		return importLines(modules, defines) + "\nexport default " + fn + ";\n"
	case ModulesJSRT:
		return fn
	default:
		return "var " + name + " = " + fn
	}
}

// amdModule passes whole modules to the factory under their alias and
// member imports as $i, picking the member inside the factory.
func amdModule(name, fn string, defines []Define) string {
	var paths, args []string
	var subs strings.Builder
	for i, d := range defines {
		paths = append(paths, js.Quote(d.ModuleName))
		if d.Member == "*" {
			args = append(args, d.Alias)
			continue
		}
		arg := fmt.Sprintf("$%d", i)
		args = append(args, arg)
		fmt.Fprintf(&subs, "var %s = %s.%s;\n", d.Alias, arg, d.Member)
	}

	var b strings.Builder
	b.WriteString("define(")
	if name != "" {
		b.WriteString(js.Quote(name) + ", ")
	}
	fmt.Fprintf(&b, "[%s], function (%s) {\n'use strict';\n", strings.Join(paths, ","), strings.Join(args, ","))
	b.WriteString(subs.String())
	fmt.Fprintf(&b, "return %s;\n});", fn)
	return b.String()
}

// importLines renders one import statement per dependency.
func importLines(modules Modules, defines []Define) string {
	lines := make([]string, len(defines))
	for i, d := range defines {
		lines[i] = buildImport(modules, d)
	}
	return strings.Join(lines, "\n")
}

func buildImport(modules Modules, d Define) string {
	if modules == ModulesES6 || modules == ModulesTypeScript {
		switch d.Member {
		case "*":
			return fmt.Sprintf("import * as %s from '%s';", d.Alias, d.ModuleName)
		case "default":
			return fmt.Sprintf("import %s from '%s';", d.Alias, d.ModuleName)
		}
		return fmt.Sprintf("import { %s as %s } from '%s';", d.Member, d.Alias, d.ModuleName)
	}
	if d.Member == "*" {
		return fmt.Sprintf("var %s = require('%s');", d.Alias, d.ModuleName)
	}
	return fmt.Sprintf("var %s = require('%s').%s;", d.Alias, d.ModuleName, d.Member)
}
