package js

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Print renders n as compact JavaScript source. Layout is left to Normalize.
func Print(n Node) string {
	var p printer
	p.node(n)
	return p.String()
}

// PrintList renders exprs the way they appear in an argument list: comma
// separated, with comments attached to the previous item.
func PrintList(exprs []Expr) string {
	var p printer
	p.list(exprs, false)
	return p.String()
}

type printer struct {
	strings.Builder
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case Expr:
		p.expr(n)
	case Stmt:
		p.stmt(n)
	default:
		panic(fmt.Sprintf("js: cannot print %T", n))
	}
}

func (p *printer) expr(e Expr) {
	switch e := e.(type) {
	case Raw:
		p.WriteString(string(e))
	case Ident:
		p.WriteString(string(e))
	case Str:
		p.WriteString(Quote(string(e)))
	case Null:
		p.WriteString("null")
	case Comment:
		p.WriteString(" /* ")
		p.WriteString(strings.ReplaceAll(string(e), "*/", "* /"))
		p.WriteString(" */ ")
	case Paren:
		p.WriteByte('(')
		p.expr(e.X)
		p.WriteByte(')')
	case Member:
		p.expr(e.X)
		p.WriteByte('.')
		p.WriteString(e.Name)
	case Call:
		p.expr(e.Fn)
		p.WriteByte('(')
		p.list(e.Args, false)
		p.WriteByte(')')
	case Ternary:
		p.WriteString("((")
		p.expr(e.Cond)
		p.WriteString(")?(")
		p.expr(e.Then)
		p.WriteString("):")
		p.expr(e.Else)
		p.WriteByte(')')
	case Concat:
		for i, x := range e {
			if i > 0 {
				p.WriteString(" + ")
			}
			p.expr(x)
		}
	case Seq:
		p.list(e, false)
	case Array:
		p.WriteByte('[')
		p.list(e, false)
		p.WriteByte(']')
	case Object:
		p.WriteByte('{')
		for i, prop := range e {
			if i > 0 {
				p.WriteByte(',')
			}
			p.WriteString(Quote(prop.Key))
			p.WriteString(" : ")
			p.expr(prop.Value)
		}
		p.WriteByte('}')
	case Binary:
		p.expr(e.X)
		p.WriteString(" " + e.Op + " ")
		p.expr(e.Y)
	case Assign:
		p.expr(e.Target)
		p.WriteString(" = ")
		p.expr(e.Value)
	case Func:
		p.function(e)
	default:
		panic(fmt.Sprintf("js: unknown expression %T", e))
	}
}

// list writes a comma separated list. Seq items are flattened and comments
// never take a comma of their own.
func (p *printer) list(exprs []Expr, wrote bool) bool {
	for _, x := range exprs {
		switch x := x.(type) {
		case Seq:
			wrote = p.list(x, wrote)
			continue
		case Comment:
			p.expr(x)
			continue
		}
		if wrote {
			p.WriteByte(',')
		}
		p.expr(x)
		wrote = true
	}
	return wrote
}

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case Func:
		p.function(s)
		p.WriteByte('\n')
	case Return:
		p.WriteString("return ")
		p.expr(s.X)
		p.WriteString(";\n")
	case Var:
		p.WriteString("var ")
		p.WriteString(s.Name)
		p.WriteString(" = ")
		p.expr(s.Init)
		p.WriteString(";\n")
	case ExprStmt:
		p.expr(s.X)
		p.WriteString(";\n")
	case Directive:
		p.WriteString(Quote(string(s)))
		p.WriteString(";\n")
	case RawStmt:
		p.WriteString(string(s))
		p.WriteByte('\n')
	case If:
		p.WriteString("if (")
		p.expr(s.Cond)
		p.WriteString(") {\n")
		for _, t := range s.Then {
			p.stmt(t)
		}
		p.WriteString("}\n")
	default:
		panic(fmt.Sprintf("js: unknown statement %T", s))
	}
}

func (p *printer) function(f Func) {
	p.WriteString("function ")
	p.WriteString(f.Name)
	p.WriteByte('(')
	p.WriteString(strings.Join(f.Params, ","))
	p.WriteString(") {\n")
	for _, s := range f.Body {
		p.stmt(s)
	}
	p.WriteByte('}')
}

// Quote returns s as a JavaScript string literal.
func Quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		panic(err)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
