// Package js holds the small JavaScript syntax tree the compiler generates,
// its printer, and the syntax checks and reformatting done through esbuild.
package js

// Node is any printable piece of generated code.
type Node interface {
	node()
}

// Expr is a generated expression.
type Expr interface {
	Node
	expr()
}

// Stmt is a generated statement.
type Stmt interface {
	Node
	stmt()
}

type (
	// Raw is source text emitted verbatim, typically a user expression
	// lifted from a template attribute.
	Raw string

	// Ident is an identifier or keyword reference such as this.
	Ident string

	// Str is a string literal. It is printed JSON-quoted.
	Str string

	// Null is the null literal.
	Null struct{}

	// Comment is a block comment. In argument lists it is glued to the
	// previous argument without a separating comma.
	Comment string

	// Paren wraps X in parentheses.
	Paren struct{ X Expr }

	// Member is X.Name.
	Member struct {
		X    Expr
		Name string
	}

	// Call is Fn(Args...).
	Call struct {
		Fn   Expr
		Args []Expr
	}

	// Ternary is ((Cond)?(Then):Else).
	Ternary struct {
		Cond, Then, Else Expr
	}

	// Concat joins its operands with +.
	Concat []Expr

	// Seq is a comma separated list of expressions. A Seq inside an
	// argument list is flattened into the surrounding arguments.
	Seq []Expr

	// Array is [Elems...].
	Array []Expr

	// Object is an object literal with keys in insertion order.
	Object []Property

	// Binary is X Op Y, such as a && b.
	Binary struct {
		X  Expr
		Op string
		Y  Expr
	}

	// Assign is Target = Value.
	Assign struct {
		Target, Value Expr
	}

	// Func is a function expression or declaration.
	Func struct {
		Name   string
		Params []string
		Body   []Stmt
	}
)

// Property is one key of an Object.
type Property struct {
	Key   string
	Value Expr
}

type (
	// Return is return X;
	Return struct{ X Expr }

	// Var is var Name = Init;
	Var struct {
		Name string
		Init Expr
	}

	// ExprStmt is X;
	ExprStmt struct{ X Expr }

	// Directive is a prologue directive such as 'use strict'.
	Directive string

	// RawStmt is statement text emitted verbatim.
	RawStmt string

	// If is if (Cond) { Then }.
	If struct {
		Cond Expr
		Then []Stmt
	}
)

func (Raw) node() {}
func (Ident) node() {}
func (Str) node() {}
func (Null) node() {}
func (Comment) node() {}
func (Paren) node() {}
func (Member) node() {}
func (Call) node() {}
func (Ternary) node() {}
func (Concat) node() {}
func (Seq) node() {}
func (Array) node() {}
func (Object) node() {}
func (Binary) node() {}
func (Assign) node() {}
func (Func) node() {}
func (Return) node() {}
func (Var) node() {}
func (ExprStmt) node() {}
func (Directive) node() {}
func (RawStmt) node() {}
func (If) node() {}

func (Raw) expr() {}
func (Ident) expr() {}
func (Str) expr() {}
func (Null) expr() {}
func (Comment) expr() {}
func (Paren) expr() {}
func (Member) expr() {}
func (Call) expr() {}
func (Ternary) expr() {}
func (Concat) expr() {}
func (Seq) expr() {}
func (Array) expr() {}
func (Object) expr() {}
func (Binary) expr() {}
func (Assign) expr() {}
func (Func) expr() {}

func (Func) stmt() {}
func (Return) stmt() {}
func (Var) stmt() {}
func (ExprStmt) stmt() {}
func (Directive) stmt() {}
func (RawStmt) stmt() {}
func (If) stmt() {}

// This is the receiver reference.
const This = Ident("this")

// Bind returns fn.bind(this, args...).
func Bind(fn string, args []string) Expr {
	bindArgs := []Expr{This}
	for _, a := range args {
		bindArgs = append(bindArgs, Ident(a))
	}
	return Call{Fn: Member{X: Ident(fn), Name: "bind"}, Args: bindArgs}
}

// Apply returns fn.apply(this, [args...]).
func Apply(fn Expr, args []Expr) Expr {
	return Call{Fn: Member{X: fn, Name: "apply"}, Args: []Expr{This, Array(args)}}
}

// Idents converts names into identifier expressions.
func Idents(names []string) []Expr {
	out := make([]Expr, len(names))
	for i, n := range names {
		out[i] = Ident(n)
	}
	return out
}

// Get returns the value stored under key and whether it exists.
func (o Object) Get(key string) (Expr, bool) {
	for _, p := range o {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set stores value under key, keeping the position of an existing key.
func (o Object) Set(key string, value Expr) Object {
	for i := range o {
		if o[i].Key == key {
			o[i].Value = value
			return o
		}
	}
	return append(o, Property{Key: key, Value: value})
}

// Delete removes key from o.
func (o Object) Delete(key string) Object {
	for i := range o {
		if o[i].Key == key {
			return append(o[:i:i], o[i+1:]...)
		}
	}
	return o
}
