package compiler

import (
	"fmt"
	"strconv"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// generateNodeCode compiles n into the expression that renders it. Text
// nodes may compile into several child arguments (a js.Seq) or into nothing
// (a nil expression).
func generateNodeCode(n *markup.Node, ctx compileContext) (js.Expr, error) {
	switch n.Type {
	case markup.TextNode:
		return generateTextCode(n, ctx)
	case markup.CommentNode:
		return js.Comment(n.Data), nil
	case markup.ElementNode:
	default:
		return nil, nil
	}

	if ctx.depth >= MaxDepth {
		return nil, newError(ctx, n, ErrInvalidDocument, "elements nested deeper than %d levels", MaxDepth)
	}
	switch n.Data {
	case importNode:
		return nil, newError(ctx, n, ErrInvalidDeclaration, "'%s' must be a toplevel node", importNode)
	case includeNode:
		return generateIncludeCode(n, ctx)
	}

	d, ctx, err := resolveDirectives(n, ctx)
	if err != nil {
		return nil, err
	}

	props, err := generateProps(n, ctx)
	if err != nil {
		return nil, err
	}
	propsExpr, err := mergeRTProps(n, props, ctx)
	if err != nil {
		return nil, err
	}

	if d.virtual {
		if err := checkVirtualAttributes(n, ctx); err != nil {
			return nil, err
		}
		injectVirtualKeys(n)
	}

	children, err := generateChildrenCode(n, ctx)
	if err != nil {
		return nil, err
	}

	var body js.Expr
	if d.virtual {
		body = js.Array(children)
	} else {
		body = elementCall(n, propsExpr, children, ctx.opts)
	}

	if d.scope != nil {
		body = wrapScope(body, d.scope, ctx)
	}
	if d.repeat != nil {
		body = wrapRepeat(body, d.repeat, d.scope, ctx)
	}
	if d.hasIf {
		body = wrapIf(body, d.condition)
	}
	return body, nil
}

// resolveDirectives reads the control attributes of n in their fixed order
// and returns the context its props and children are compiled in. Loop
// variables are bound before the scope is read, so scope expressions can
// use them.
func resolveDirectives(n *markup.Node, ctx compileContext) (directives, compileContext, error) {
	d := directives{virtual: n.Data == virtualNode}
	ctx = ctx.descend()

	if val, ok := n.Attribute(repeatAttr); ok {
		r, err := resolveRepeat(n, val, ctx)
		if err != nil {
			return d, ctx, err
		}
		d.repeat = r
		ctx.bound = ctx.bound.with(r.item, r.index)
	}
	if val, ok := n.Attribute(scopeAttr); ok {
		scope, bound, err := resolveScope(n, val, ctx)
		if err != nil {
			return d, ctx, err
		}
		d.scope = scope
		ctx.bound = bound
	}
	if val, ok := n.Attribute(ifAttr); ok {
		cond, err := resolveIf(n, val, d.scope, ctx)
		if err != nil {
			return d, ctx, err
		}
		d.condition, d.hasIf = cond, true
	}
	return d, ctx, nil
}

// generateChildrenCode compiles the children of n into argument
// expressions. Each child must be valid code on its own.
func generateChildrenCode(n *markup.Node, ctx compileContext) ([]js.Expr, error) {
	var children []js.Expr
	for _, child := range n.Children {
		code, err := generateNodeCode(child, ctx)
		if err != nil {
			return nil, err
		}
		if code == nil {
			continue
		}
		if err := validateJS(js.Print(code), child, ctx); err != nil {
			return nil, err
		}
		children = append(children, code)
	}
	return children, nil
}

// elementCall builds the element factory call for n. Children produced by
// rt-repeat are arrays, so those calls go through apply.
func elementCall(n *markup.Node, props js.Expr, children []js.Expr, opts *Options) js.Expr {
	tag := tagConstructor(n.Data, opts)
	simple := !hasNonSimpleChildren(n)

	if useCreateElement(opts.TargetVersion) || opts.Native {
		createElement := js.Member{X: js.Ident("React"), Name: "createElement"}
		args := append([]js.Expr{tag, props}, children...)
		if simple {
			return js.Call{Fn: createElement, Args: args}
		}
		return js.Apply(createElement, args)
	}

	args := append([]js.Expr{props}, children...)
	if simple {
		return js.Call{Fn: tag, Args: args}
	}
	return js.Apply(tag, args)
}

// injectVirtualKeys gives the element children of a multi-child rt-virtual
// a key made of the virtual node offset and their index among the children
// without a key, since they end up as siblings in an array.
func injectVirtualKeys(n *markup.Node) {
	if len(n.Children) <= 1 {
		return
	}
	i := 0
	for _, c := range n.Children {
		if key, _ := c.Attribute(keyAttr); key != "" {
			continue
		}
		if c.Type == markup.ElementNode && c.Data != virtualNode {
			c.SetAttr(keyAttr, strconv.Itoa(n.Offset)+strconv.Itoa(i))
		}
		i++
	}
}

// generateIncludeCode compiles the document named by rt-include src in
// place of the element. The included document follows the root rules of a
// top-level document.
func generateIncludeCode(n *markup.Node, ctx compileContext) (js.Expr, error) {
	src, _ := n.Attribute("src")
	if src == "" {
		return nil, newError(ctx, n, ErrIncludeFailed, "%s must supply a source attribute", includeNode)
	}
	if ctx.opts.ReadFile == nil {
		return nil, newError(ctx, n, ErrIncludeFailed, "%s needs a ReadFile function in the compile options", includeNode)
	}
	text, err := ctx.opts.ReadFile(src)
	if err != nil {
		e := newError(ctx, n, ErrIncludeFailed, "%s failed to read file '%s'", includeNode, src)
		e.Err = fmt.Errorf("read include: %w", err)
		return nil, e
	}
	inner := ctx.descend()
	inner.source = text
	return compileDocument(text, inner)
}
