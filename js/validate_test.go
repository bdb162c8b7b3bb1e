package js

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateProgram(t *testing.T) {
	valid := []string{
		"item",
		"var n = items.length;",
		`"a",(b + 1)`,
		"",
		" /* comment */ ",
		"React.createElement('div',{})",
	}
	for _, code := range valid {
		if err := ValidateProgram(code); err != nil {
			t.Errorf("ValidateProgram(%q) returned error: %v", code, err)
		}
	}

	invalid := []string{"a +", "var = 1;", "class", "(a"}
	for _, code := range invalid {
		err := ValidateProgram(code)
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Errorf("ValidateProgram(%q) = %v, want *SyntaxError", code, err)
			continue
		}
		if syntaxErr.Offset < 0 || syntaxErr.Offset > len(code) {
			t.Errorf("ValidateProgram(%q) offset %d out of range", code, syntaxErr.Offset)
		}
	}
}

func TestValidateExpression(t *testing.T) {
	valid := []string{"a", "a && b.c", "items.length > 0;", "f({x: 1})", "`t${a}`"}
	for _, code := range valid {
		if err := ValidateExpression(code); err != nil {
			t.Errorf("ValidateExpression(%q) returned error: %v", code, err)
		}
	}

	invalid := []string{"", "a; b", "a) || (b", "var x = 1", "{a: 1}", "a +"}
	for _, code := range invalid {
		if err := ValidateExpression(code); err == nil {
			t.Errorf("ValidateExpression(%q) expected error", code)
		}
	}
}

func TestValidateExpression_OffsetPointsIntoInput(t *testing.T) {
	err := ValidateExpression("a; b")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Offset != 1 {
		t.Errorf("expected offset 1, got %d", syntaxErr.Offset)
	}
}

func TestNormalize_IsIdempotent(t *testing.T) {
	src := "'use strict';\nvar React = require('react');\nmodule.exports = function () { function repeatItem1(item,itemIndex) {\nreturn React.createElement('li',{}, item);\n}\nreturn React.createElement.apply(this, ['ul',{},_.map(items,repeatItem1.bind(this))]) };\n"
	once, err := Normalize(src)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	twice, err := Normalize(once)
	if err != nil {
		t.Fatalf("Normalize returned error on its own output: %v", err)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Normalize not idempotent (-once +twice):\n%s", diff)
	}
	if !strings.Contains(once, "repeatItem1") {
		t.Errorf("hoisted function lost in normalization:\n%s", once)
	}
}

func TestNormalize_ReportsSyntaxErrors(t *testing.T) {
	_, err := Normalize("module.exports = function( {")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
}
