package compiler

import (
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// textMode selects how the segments of converted text are joined: as
// separate child arguments or concatenated into one string value.
type textMode int

const (
	textChildren textMode = iota
	textValue
)

// convertText compiles text with embedded {expression} segments. Literal
// segments become string literals and expressions are parenthesized. Braces
// nest, so {{a: 1}} holds the expression {a: 1}. Empty text is the boolean
// true, as for a bare attribute.
func convertText(n *markup.Node, ctx compileContext, txt string, mode textMode, normalize bool) (js.Expr, error) {
	literal := func(s string) js.Expr {
		if normalize {
			s = whitespaceRegex.ReplaceAllString(s, " ")
		}
		return js.Str(s)
	}

	original := txt
	var parts []js.Expr
	for {
		start := strings.IndexByte(txt, '{')
		if start < 0 {
			break
		}
		if start > 0 {
			parts = append(parts, literal(txt[:start]))
		}
		depth, end := 0, start
		for ; end < len(txt); end++ {
			switch txt[end] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				break
			}
		}
		if depth != 0 {
			return nil, newError(ctx, n, ErrInvalidExpression, "Failed to parse text '%s'", original)
		}
		parts = append(parts, js.Paren{X: js.Raw(txt[start+1 : end])})
		txt = txt[end+1:]
	}
	if txt != "" {
		parts = append(parts, literal(txt))
	}

	switch {
	case len(parts) == 0:
		return js.Raw("true"), nil
	case mode == textChildren:
		return js.Seq(parts), nil
	case len(parts) == 1:
		return parts[0], nil
	}
	return js.Concat(parts), nil
}

// generateTextCode compiles a text node into zero or more child arguments.
// Whitespace-only text produces nothing.
func generateTextCode(n *markup.Node, ctx compileContext) (js.Expr, error) {
	if trimHTMLText(n.Data) == "" {
		return nil, nil
	}
	normalize := ctx.opts.NormalizeHTMLWhitespace && !keepsWhitespace(n.Parent)
	return convertText(n, ctx, n.Data, textChildren, normalize)
}

// keepsWhitespace reports whether text inside parent is emitted as written.
func keepsWhitespace(parent *markup.Node) bool {
	if parent == nil {
		return false
	}
	return parent.Data == "pre" || parent.Data == "textarea" || parent.HasAttr(preAttr)
}
