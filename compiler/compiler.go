// Package compiler turns rt templates, HTML annotated with rt-* directives,
// into JavaScript render functions for React and React Native.
//
// Nested closures are never generated. Every function a template needs, for
// loops, scopes, event handlers and render props, is hoisted to the top of
// the render function and receives the identifiers visible where it was
// written as explicit parameters, bound at its call site.
package compiler

import (
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// Convert compiles a template document into a module exporting its render
// function. On failure the error is an *Error and no output is produced.
func Convert(html string, opts Options) (string, error) {
	o, err := opts.resolve()
	if err != nil {
		return "", err
	}
	reg := newRegistry(o.Defines)
	ctx := compileContext{reg: reg, opts: &o, source: html}

	body, err := compileDocument(html, ctx)
	if err != nil {
		return "", err
	}
	return emitModule(body, reg, &o)
}

// ConvertJSRT compiles every <template>...</template> block of a JavaScript
// file into its render function in place, then normalizes the file.
func ConvertJSRT(text string, opts Options) (string, error) {
	opts.Modules = ModulesJSRT

	var b strings.Builder
	last := 0
	for _, m := range jsrtTemplateRegex.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[last:m[0]])
		fn, err := Convert(text[m[2]:m[3]], opts)
		if err != nil {
			return "", err
		}
		b.WriteString(strings.TrimSuffix(strings.TrimSpace(fn), ";"))
		last = m[1]
	}
	b.WriteString(text[last:])

	out, err := js.Normalize(b.String())
	if err != nil {
		return "", asCompileError(err, b.String(), ErrInvalidExpression)
	}
	return out, nil
}

// compileDocument parses a document, records its declarations and compiles
// its single content root.
func compileDocument(html string, ctx compileContext) (js.Expr, error) {
	doc, err := markup.Parse(html)
	if err != nil {
		return nil, asCompileError(err, html, ErrMarkupSyntax)
	}
	doc.Children = normalizeSelfClosing(doc.Children)

	roots := doc.Elements()
	if len(roots) == 0 {
		return nil, &Error{Kind: ErrInvalidDocument, Message: "Document should have a root element", source: html}
	}

	var root *markup.Node
	for _, n := range roots {
		switch n.Data {
		case requireNode:
			if err := handleRequire(n, ctx); err != nil {
				return nil, err
			}
		case importNode:
			if err := handleImport(n, ctx); err != nil {
				return nil, err
			}
		default:
			if root != nil {
				return nil, newError(ctx, n, ErrInvalidDocument, "Document should have no more than a single root element")
			}
			root = n
			if root.HasAttr(statelessAttr) {
				ctx.reg.stateless = true
			}
		}
	}

	if root == nil {
		return nil, newError(ctx, roots[len(roots)-1], ErrInvalidDocument, "Document should have a single root element")
	}
	if err := checkRoot(root, ctx); err != nil {
		return nil, err
	}
	return generateNodeCode(root, ctx)
}

func handleRequire(n *markup.Node, ctx compileContext) error {
	if len(n.Children) > 0 {
		return newError(ctx, n, ErrInvalidDeclaration, "'%s' may have no children", requireNode)
	}
	dependency, _ := n.Attribute("dependency")
	alias, _ := n.Attribute("as")
	if dependency == "" || alias == "" {
		return newError(ctx, n, ErrInvalidDeclaration, "'%s' needs 'dependency' and 'as' attributes", requireNode)
	}
	ctx.reg.declare(Define{ModuleName: dependency, Alias: alias, Member: "*"})
	return nil
}

// handleImport records <rt-import name="member" from="module" as="alias">.
// Whole-module and default imports need an alias, named imports default
// to the member name.
func handleImport(n *markup.Node, ctx compileContext) error {
	if len(n.Children) > 0 {
		return newError(ctx, n, ErrInvalidDeclaration, "'%s' may have no children", importNode)
	}
	name, _ := n.Attribute("name")
	from, _ := n.Attribute("from")
	alias, _ := n.Attribute("as")
	if name == "" || from == "" {
		return newError(ctx, n, ErrInvalidDeclaration, "'%s' needs 'name' and 'from' attributes", importNode)
	}
	if alias == "" {
		if name == "*" || name == "default" {
			return newError(ctx, n, ErrInvalidDeclaration, "'%s' must have 'as' attribute when importing '%s'", importNode, name)
		}
		alias = name
	}
	ctx.reg.declare(Define{ModuleName: from, Alias: alias, Member: name})
	return nil
}
