package compiler

import (
	"fmt"
	"strings"

	"github.com/vcrobe/rtc/markup"
)

// ErrorKind classifies compile errors. It implements error so callers can
// test for a category with errors.Is(err, compiler.ErrDuplicateProp).
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	// ErrMalformedRepeat indicates an rt-repeat value without exactly one " in ".
	ErrMalformedRepeat ErrorKind = "malformed-repeat"
	// ErrMalformedScope indicates an rt-scope value that does not parse.
	ErrMalformedScope ErrorKind = "malformed-scope"
	// ErrInvalidCondition indicates an rt-if that is not a single expression.
	ErrInvalidCondition ErrorKind = "invalid-condition"
	// ErrInvalidConditionScope indicates an rt-if that reads an rt-scope
	// identifier of the same element.
	ErrInvalidConditionScope ErrorKind = "invalid-condition-scope"
	// ErrInvalidExpression indicates template code that is not valid JavaScript.
	ErrInvalidExpression ErrorKind = "invalid-expression"
	// ErrInvalidEventHandler indicates an on* attribute that is neither
	// {expression} nor a single lambda.
	ErrInvalidEventHandler ErrorKind = "invalid-event-handler"
	// ErrInvalidStyle indicates a style key containing an expression.
	ErrInvalidStyle ErrorKind = "invalid-style"
	// ErrDuplicateProp indicates two attributes mapping to the same prop.
	ErrDuplicateProp ErrorKind = "duplicate-prop"
	// ErrInvalidTemplate indicates a malformed rt-template or prop template child.
	ErrInvalidTemplate ErrorKind = "invalid-template"
	// ErrInvalidDeclaration indicates a malformed rt-require or rt-import.
	ErrInvalidDeclaration ErrorKind = "invalid-declaration"
	// ErrInvalidDocument indicates a root element cardinality or type violation.
	ErrInvalidDocument ErrorKind = "invalid-document"
	// ErrInvalidVirtualAttribute indicates an rt-virtual with a non-directive attribute.
	ErrInvalidVirtualAttribute ErrorKind = "invalid-virtual-attribute"
	// ErrIncludeFailed indicates an rt-include that could not be read.
	ErrIncludeFailed ErrorKind = "include-failed"
	// ErrMarkupSyntax indicates markup that could not be parsed.
	ErrMarkupSyntax ErrorKind = "markup-syntax"
	// ErrInvalidOption indicates an unusable Options value.
	ErrInvalidOption ErrorKind = "invalid-option"
)

// Error is a template compile error. Line and Column are 1-based and
// refer to the document being compiled (an included document for errors
// raised inside an rt-include). Node is nil for document-level errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Node    *markup.Node
	Line    int
	Column  int
	Start   int
	End     int
	Err     error

	source string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}

// Context returns the source lines around the error with the error line
// marked, or "" when the position is unknown.
func (e *Error) Context() string {
	if e.Line <= 0 || e.source == "" {
		return ""
	}
	return getContextLines(e.source, e.Line, 2)
}

// newError builds an Error positioned at n inside ctx's document.
func newError(ctx compileContext, n *markup.Node, kind ErrorKind, format string, args ...any) *Error {
	e := &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Node: n, source: ctx.source}
	if n != nil {
		e.Start, e.End = n.Offset, n.TagEnd
		e.Line, e.Column = position(ctx.source, n.Offset)
	}
	return e
}

// newOffsetError builds an Error positioned at a byte offset of source.
func newOffsetError(source string, offset int, kind ErrorKind, err error) *Error {
	e := &Error{Kind: kind, Message: err.Error(), Start: offset, End: offset, Err: err, source: source}
	e.Line, e.Column = position(source, offset)
	return e
}

// position converts a byte offset into a 1-based line and column.
func position(source string, offset int) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > len(source) {
		offset = len(source)
	}
	line = strings.Count(source[:offset], "\n") + 1
	column = offset - strings.LastIndexByte(source[:offset], '\n')
	return line, column
}
