package compiler

import (
	"errors"
	"testing"

	"github.com/vcrobe/rtc/markup"
)

func TestError_Format(t *testing.T) {
	e := &Error{Kind: ErrDuplicateProp, Message: "duplicate definition of id", Line: 3, Column: 7}
	if got := e.Error(); got != "3:7: duplicate definition of id" {
		t.Errorf("Unexpected message %q", got)
	}
	e = &Error{Kind: ErrInvalidOption, Message: "unknown modules 'x'"}
	if got := e.Error(); got != "unknown modules 'x'" {
		t.Errorf("Unexpected message %q", got)
	}
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	var err error = &Error{Kind: ErrIncludeFailed, Err: cause}
	if !errors.Is(err, ErrIncludeFailed) {
		t.Error("Expected error to match its kind")
	}
	if errors.Is(err, ErrInvalidTemplate) {
		t.Error("Expected error not to match another kind")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected error to unwrap to its cause")
	}
}

func TestNewError_Position(t *testing.T) {
	src := "<div>\r\n<a>\n\t<b></b></a></div>"
	ctx := compileContext{source: src}
	n := &markup.Node{Type: markup.ElementNode, Data: "b", Offset: 12, TagEnd: 15}
	e := newError(ctx, n, ErrInvalidTemplate, "bad %s", "b")
	if e.Line != 3 || e.Column != 2 {
		t.Errorf("Expected 3:2, got %d:%d", e.Line, e.Column)
	}
	if e.Start != 12 || e.End != 15 {
		t.Errorf("Expected span 12-15, got %d-%d", e.Start, e.End)
	}
	if e.Message != "bad b" {
		t.Errorf("Unexpected message %q", e.Message)
	}
}

func TestPosition_ClampsOffset(t *testing.T) {
	line, col := position("ab\ncd", 100)
	if line != 2 || col != 3 {
		t.Errorf("Expected 2:3, got %d:%d", line, col)
	}
}
