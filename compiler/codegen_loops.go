package compiler

import (
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// resolveRepeat reads rt-repeat="item[, index] in collection". The index
// defaults to <item>Index.
func resolveRepeat(n *markup.Node, val string, ctx compileContext) (*repeatDirective, error) {
	parts := strings.Split(strings.TrimSpace(val), " in ")
	if len(parts) != 2 {
		return nil, newError(ctx, n, ErrMalformedRepeat, "rt-repeat invalid 'in' expression '%s'", val)
	}
	vars := strings.Split(parts[0], ",")
	r := &repeatDirective{
		item:       strings.TrimSpace(vars[0]),
		collection: strings.TrimSpace(parts[1]),
	}
	if len(vars) > 1 {
		r.index = strings.TrimSpace(vars[1])
	} else {
		r.index = r.item + "Index"
	}

	if err := validateJS(r.item, n, ctx); err != nil {
		return nil, err
	}
	if err := validateJS(r.index, n, ctx); err != nil {
		return nil, err
	}
	if err := validateJS("("+r.collection+")", n, ctx); err != nil {
		return nil, err
	}
	r.callSite = ctx.bound.without(r.item, r.index)
	return r, nil
}

// wrapRepeat hoists body into the loop function and maps the collection
// over it. The function takes the call site bindings, then the loop item
// and index, then the scope identifiers of the same element.
func wrapRepeat(body js.Expr, r *repeatDirective, scope *scopeDirective, ctx compileContext) js.Expr {
	extra := []string{r.item, r.index}
	if scope != nil {
		for _, id := range scope.identifiers() {
			if !r.callSite.contains(id) && id != r.item && id != r.index {
				extra = append(extra, id)
			}
		}
	}
	name := ctx.reg.hoist("repeat"+upperFirst(r.item), r.callSite, extra, []js.Stmt{js.Return{X: body}})
	return js.Call{
		Fn:   js.Member{X: js.Ident("_"), Name: "map"},
		Args: []js.Expr{js.Raw(r.collection), js.Bind(name, r.callSite)},
	}
}
