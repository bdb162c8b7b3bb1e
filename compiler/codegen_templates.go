package compiler

import (
	"maps"
	"slices"
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// templateChild is a child of n that compiles into a render callback prop.
type templateChild struct {
	node    *markup.Node
	content *markup.Node
	prop    string
	args    []string
}

// generateTemplateProps compiles rt-template children, and children that
// match a configured prop template of n, into props holding a hoisted
// render function. The children are removed from n.
func generateTemplateProps(n *markup.Node, ctx compileContext) (js.Object, error) {
	var templates []templateChild
	for _, child := range n.Elements() {
		t, ok, err := findTemplateChild(n, child, ctx)
		if err != nil {
			return nil, err
		}
		if ok {
			templates = append(templates, t)
		}
	}
	if len(templates) == 0 {
		return nil, nil
	}

	var props js.Object
	for _, t := range templates {
		inner := ctx.descend()
		inner.bound = ctx.bound.with(t.args...)
		body, err := generateNodeCode(t.content, inner)
		if err != nil {
			return nil, err
		}
		name := ctx.reg.hoist(t.prop, ctx.bound, t.args, []js.Stmt{js.Return{X: orNull(body)}})
		props = props.Set(t.prop, js.Bind(name, ctx.bound))
	}

	n.Children = slices.DeleteFunc(n.Children, func(c *markup.Node) bool {
		return slices.ContainsFunc(templates, func(t templateChild) bool { return t.node == c })
	})
	return props, nil
}

func findTemplateChild(parent, child *markup.Node, ctx compileContext) (templateChild, bool, error) {
	t := templateChild{node: child}
	if child.Data == templateNode {
		prop, ok := child.Attribute("prop")
		if !ok || prop == "" {
			return t, false, newError(ctx, child, ErrInvalidTemplate, "rt-template must have a prop attribute")
		}
		elems := child.Elements()
		if len(elems) != 1 {
			return t, false, newError(ctx, child, ErrInvalidTemplate, "'rt-template' should have a single non-text element as direct child")
		}
		t.prop, t.content = prop, elems[0]
		t.args = defaultTemplateArguments(prop, ctx.opts)
	} else {
		def, ok := ctx.opts.PropTemplates[parent.Data][child.Data]
		if !ok {
			return t, false, nil
		}
		elems := child.Elements()
		if len(elems) == 0 {
			return t, false, newError(ctx, child, ErrInvalidTemplate, "'%s' should have a non-text element as direct child", child.Data)
		}
		t.prop, t.content = def.Prop, elems[0]
		t.args = slices.Clone(def.Arguments)
	}
	if args, ok := child.Attribute("arguments"); ok {
		t.args = splitArguments(args)
	}
	return t, true, nil
}

// defaultTemplateArguments returns the arguments configured for prop on any
// tag, so an explicit rt-template for a known render prop gets its usual
// parameters. Tables are searched in sorted order.
func defaultTemplateArguments(prop string, opts *Options) []string {
	for _, tag := range slices.Sorted(maps.Keys(opts.PropTemplates)) {
		children := opts.PropTemplates[tag]
		for _, child := range slices.Sorted(maps.Keys(children)) {
			if def := children[child]; def.Prop == prop {
				return slices.Clone(def.Arguments)
			}
		}
	}
	return nil
}

func splitArguments(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	args := strings.Split(s, ",")
	for i := range args {
		args[i] = strings.TrimSpace(args[i])
	}
	return args
}

// orNull returns e, or null when e produced no code.
func orNull(e js.Expr) js.Expr {
	if e == nil {
		return js.Null{}
	}
	return e
}
