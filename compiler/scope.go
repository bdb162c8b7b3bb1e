package compiler

import (
	"fmt"
	"strings"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// scopeClause is one "expression as identifier" entry of an rt-scope value.
type scopeClause struct {
	Expression string
	Identifier string
}

// scopeSyntaxError carries the part of an rt-scope value that could not be
// read as a clause.
type scopeSyntaxError struct {
	Remainder string
}

func (e *scopeSyntaxError) Error() string {
	return fmt.Sprintf("invalid scope part '%s'", e.Remainder)
}

// parseScopeSyntax splits an rt-scope value into its clauses. Clauses are
// separated by ';' or the end of the text. Quoted strings inside an
// expression are skipped whole, so " as " or ';' inside them does not end
// the expression.
func parseScopeSyntax(text string) ([]scopeClause, error) {
	if text == "" {
		return nil, &scopeSyntaxError{Remainder: text}
	}
	var clauses []scopeClause
	pos := 0
	for pos < len(text) {
		clause, next, ok := scanScopeClause(text, pos)
		if !ok {
			return nil, &scopeSyntaxError{Remainder: text[pos:]}
		}
		clauses = append(clauses, clause)
		pos = next
	}
	return clauses, nil
}

// scanScopeClause reads the clause starting at pos and returns it with the
// offset of the next clause.
func scanScopeClause(text string, pos int) (scopeClause, int, bool) {
	for i := pos; i < len(text); i++ {
		switch c := text[i]; c {
		case '"', '\'':
			end, ok := skipQuoted(text, i)
			if !ok {
				return scopeClause{}, 0, false
			}
			i = end - 1
		case ' ':
			id, next, ok := scanAsIdentifier(text, i)
			if ok {
				return scopeClause{Expression: strings.TrimSpace(text[pos:i]), Identifier: id}, next, true
			}
		}
	}
	return scopeClause{}, 0, false
}

// scanAsIdentifier matches ` as +identifier *(;|$) *` at i.
func scanAsIdentifier(text string, i int) (string, int, bool) {
	rest, ok := strings.CutPrefix(text[i:], " as ")
	if !ok {
		return "", 0, false
	}
	rest = strings.TrimLeft(rest, " ")
	n := 0
	for n < len(rest) && isScopeIdentByte(rest[n], n == 0) {
		n++
	}
	if n == 0 {
		return "", 0, false
	}
	id := rest[:n]
	after := strings.TrimLeft(rest[n:], " ")
	if after != "" {
		if after[0] != ';' {
			return "", 0, false
		}
		after = strings.TrimLeft(after[1:], " ")
	}
	return id, len(text) - len(after), true
}

func isScopeIdentByte(c byte, first bool) bool {
	switch {
	case c == '$' || c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}

// skipQuoted returns the offset just past the string literal starting at i.
func skipQuoted(text string, i int) (int, bool) {
	quote := text[i]
	for j := i + 1; j < len(text); j++ {
		switch text[j] {
		case '\\':
			j++
		case quote:
			return j + 1, true
		}
	}
	return 0, false
}

// resolveScope reads the rt-scope of n. The scope function takes the
// bindings visible before the scope as parameters and declares every
// scope identifier as a local variable.
func resolveScope(n *markup.Node, val string, ctx compileContext) (*scopeDirective, bindings, error) {
	clauses, err := parseScopeSyntax(val)
	if err != nil {
		e := newError(ctx, n, ErrMalformedScope, "%s", err.Error())
		e.Err = err
		return nil, nil, e
	}

	scope := &scopeDirective{outer: ctx.bound}
	bound := ctx.bound
	for _, c := range clauses {
		if err := validateJS(c.Identifier, n, ctx); err != nil {
			return nil, nil, err
		}
		bound = bound.with(c.Identifier)
		scope.name += upperFirst(c.Identifier)

		init := js.Var{Name: c.Identifier, Init: js.Raw(c.Expression)}
		if err := validateJS(js.Print(init), n, ctx); err != nil {
			return nil, nil, err
		}
		scope.set(c.Identifier, c.Expression)
	}
	return scope, bound, nil
}

// set records the initializer of ident, replacing an earlier one in place.
func (s *scopeDirective) set(ident, expr string) {
	for i := range s.inner {
		if s.inner[i].ident == ident {
			s.inner[i].expr = expr
			return
		}
	}
	s.inner = append(s.inner, scopeBinding{ident: ident, expr: expr})
}

func (s *scopeDirective) identifiers() []string {
	ids := make([]string, len(s.inner))
	for i, b := range s.inner {
		ids[i] = b.ident
	}
	return ids
}

// wrapScope hoists body into the scope function and returns its call.
func wrapScope(body js.Expr, scope *scopeDirective, ctx compileContext) js.Expr {
	stmts := make([]js.Stmt, 0, len(scope.inner)+1)
	for _, b := range scope.inner {
		stmts = append(stmts, js.Var{Name: b.ident, Init: js.Raw(b.expr)})
	}
	stmts = append(stmts, js.Return{X: body})
	name := ctx.reg.hoist("scope"+scope.name, scope.outer, nil, stmts)
	return js.Apply(js.Ident(name), js.Idents(scope.outer))
}
