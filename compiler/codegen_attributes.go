package compiler

import (
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// generateProps compiles the attributes of n into its props object. Child
// templates are compiled into trailing props and removed from n.
func generateProps(n *markup.Node, ctx compileContext) (js.Object, error) {
	var props js.Object
	for _, attr := range n.Attr {
		key, val := attr.Key, attr.Val
		prop := propName(key)
		if _, dup := props.Get(prop); dup && prop != classNameProp {
			return nil, newError(ctx, n, ErrDuplicateProp, "duplicate definition of %s %s", prop, attributesJSON(n))
		}

		switch {
		case strings.HasPrefix(key, "on") && !isStringOnlyCode(val):
			handler, err := generateEventHandler(n, key, val, ctx)
			if err != nil {
				return nil, err
			}
			props = props.Set(prop, handler)
		case key == styleAttr && !isStringOnlyCode(val):
			style, err := generateStyle(n, val, ctx)
			if err != nil {
				return nil, err
			}
			props = props.Set(prop, style)
		case prop == classNameProp:
			var part js.Expr
			switch key {
			case classSetAttr:
				part = classSet(val)
			case classAttr, classNameProp:
				var err error
				if part, err = convertText(n, ctx, strings.TrimSpace(val), textValue, false); err != nil {
					return nil, err
				}
			default:
				continue
			}
			if prev, ok := props.Get(prop); ok {
				part = concat(prev, js.Str(" "), part)
			}
			props = props.Set(prop, part)
		case !strings.HasPrefix(key, "rt-"):
			value, err := convertText(n, ctx, strings.TrimSpace(val), textValue, false)
			if err != nil {
				return nil, err
			}
			props = props.Set(prop, value)
		}
	}

	templates, err := generateTemplateProps(n, ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range templates {
		props = props.Set(p.Key, p.Value)
	}

	if class, ok := props.Get(classNameProp); ok && isCustomElement(n.Data) {
		props = props.Delete(classNameProp).Set(classAttr, class)
	}
	return props, nil
}

// generateEventHandler compiles on*="(args) => body" into a hoisted
// function bound to the current bindings.
func generateEventHandler(n *markup.Node, key, val string, ctx compileContext) (js.Expr, error) {
	parts := strings.Split(val, "=>")
	if len(parts) != 2 {
		return nil, newError(ctx, n, ErrInvalidEventHandler,
			"when using 'on' events, use lambda '(p1,p2)=>body' notation or use {} to return a callback function. error: [%s='%s']", key, val)
	}
	params := strings.Replace(parts[0], "(", "", 1)
	params = strings.TrimSpace(strings.Replace(params, ")", "", 1))
	body := strings.TrimSpace(parts[1])
	if err := validateJS(body, n, ctx); err != nil {
		return nil, err
	}

	var extra []string
	if params != "" {
		extra = []string{params}
	}
	name := ctx.reg.hoist(key, ctx.bound, extra, []js.Stmt{js.RawStmt(body)})
	return js.Bind(name, ctx.bound), nil
}

// generateStyle compiles an inline style declaration list into an object.
// Values may hold {expressions}.
func generateStyle(n *markup.Node, val string, ctx compileContext) (js.Expr, error) {
	var style js.Object
	for _, decl := range strings.Split(val, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(decl), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if strings.ContainsAny(key, "{}") {
			return nil, newError(ctx, n, ErrInvalidStyle, "style attribute keys cannot contain { } expressions")
		}
		expr, err := convertText(n, ctx, strings.TrimSpace(value), textValue, false)
		if err != nil {
			return nil, err
		}
		style = style.Set(styleKey(key), expr)
	}
	if style == nil {
		style = js.Object{}
	}
	return style, nil
}

// styleKey converts a CSS property name into its React style key. Vendor
// prefixes other than -ms- keep a leading capital.
func styleKey(key string) string {
	if vendorPrefixRegex.MatchString(key) {
		return strcase.ToCamel(strings.TrimLeft(key, "-"))
	}
	return strcase.ToLowerCamel(strings.TrimLeft(key, "-"))
}

// classSet compiles rt-class="{name: condition}" into the names whose
// condition holds, joined by spaces.
func classSet(set string) js.Expr {
	res, value, key := js.Ident("res"), js.Ident("value"), js.Ident("key")
	collect := js.Func{
		Params: []string{"res", "value", "key"},
		Body: []js.Stmt{js.If{
			Cond: value,
			Then: []js.Stmt{js.ExprStmt{X: js.Call{Fn: js.Member{X: res, Name: "push"}, Args: []js.Expr{key}}}},
		}},
	}
	transform := js.Call{
		Fn:   js.Member{X: js.Ident("_"), Name: "transform"},
		Args: []js.Expr{js.Raw(set), collect, js.Array{}},
	}
	return js.Call{Fn: js.Member{X: transform, Name: "join"}, Args: []js.Expr{js.Str(" ")}}
}

// mergeRTProps combines the compiled props with an rt-props override.
// Overrides win, except that inline style entries survive as defaults and
// class names are concatenated.
func mergeRTProps(n *markup.Node, props js.Object, ctx compileContext) (js.Expr, error) {
	override, _ := n.Attribute(propsAttr)
	if override == "" {
		return props, nil
	}
	if err := js.ValidateExpression(override); err != nil {
		return nil, expressionError(err, n, ctx)
	}
	if len(props) == 0 {
		return js.Raw(override), nil
	}
	style, _ := n.Attribute(styleAttr)
	class, _ := n.Attribute(classAttr)
	if style == "" && class == "" {
		return js.Call{
			Fn:   js.Member{X: js.Ident("_"), Name: "assign"},
			Args: []js.Expr{js.Object{}, props, js.Paren{X: js.Raw(override)}},
		}, nil
	}
	ctx.reg.requireMergeProps()
	return js.Call{Fn: js.Ident(mergePropsName), Args: []js.Expr{props, js.Paren{X: js.Raw(override)}}}, nil
}

// concat joins operands with +, flattening nested concatenations.
func concat(operands ...js.Expr) js.Concat {
	var out js.Concat
	for _, o := range operands {
		if c, ok := o.(js.Concat); ok {
			out = append(out, c...)
			continue
		}
		out = append(out, o)
	}
	return out
}
