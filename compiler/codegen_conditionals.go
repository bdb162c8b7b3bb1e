package compiler

import (
	"slices"
	"strconv"
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// resolveIf validates an rt-if condition. The condition is evaluated
// outside the scope function of the same element, so it cannot read the
// identifiers that rt-scope declares.
func resolveIf(n *markup.Node, val string, scope *scopeDirective, ctx compileContext) (string, error) {
	cond := strings.TrimSpace(val)
	if err := js.ValidateExpression(cond); err != nil {
		e := newError(ctx, n, ErrInvalidCondition, "invalid if part '%s': %s", cond, err.Error())
		e.Err = err
		return "", e
	}
	cond = strings.TrimSpace(strings.TrimSuffix(cond, ";"))
	if scope != nil {
		inner := scope.identifiers()
		for _, ref := range js.References(cond) {
			if slices.Contains(inner, ref) {
				return "", newError(ctx, n, ErrInvalidConditionScope, "invalid scope mapping used in if part '%s'", cond)
			}
		}
	}

	// conditional siblings need a stable key
	if !n.HasAttr(keyAttr) && n.Data != virtualNode {
		n.SetAttr(keyAttr, strconv.Itoa(n.Offset))
	}
	return cond, nil
}

// wrapIf guards body by the condition.
func wrapIf(body js.Expr, cond string) js.Expr {
	return js.Ternary{Cond: js.Raw(cond), Then: body, Else: js.Null{}}
}
