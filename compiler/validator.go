package compiler

import (
	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// validateJS reports code that does not parse as a program as an error on n.
func validateJS(code string, n *markup.Node, ctx compileContext) error {
	if err := js.ValidateProgram(code); err != nil {
		return expressionError(err, n, ctx)
	}
	return nil
}

func expressionError(err error, n *markup.Node, ctx compileContext) *Error {
	e := newError(ctx, n, ErrInvalidExpression, "%s", err.Error())
	e.Err = err
	return e
}

// checkVirtualAttributes rejects attributes that an rt-virtual element,
// which renders no element of its own, could not apply.
func checkVirtualAttributes(n *markup.Node, ctx compileContext) error {
	for _, a := range n.Attr {
		switch a.Key {
		case scopeAttr, ifAttr, repeatAttr:
		default:
			return newError(ctx, n, ErrInvalidVirtualAttribute,
				"<%s> may not contain attributes other than '%s', '%s' and '%s'", virtualNode, scopeAttr, ifAttr, repeatAttr)
		}
	}
	return nil
}

// checkRoot enforces the rules for the content root of a document.
func checkRoot(root *markup.Node, ctx compileContext) error {
	switch {
	case root.Data == virtualNode:
		return newError(ctx, root, ErrInvalidDocument, "Document should not have <%s> as root element", virtualNode)
	case root.HasAttr(repeatAttr):
		return newError(ctx, root, ErrInvalidDocument, "root element may not have a '%s' attribute", repeatAttr)
	}
	return nil
}
