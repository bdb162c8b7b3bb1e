package js

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// SyntaxError is a JavaScript parse failure. Offset is the byte offset of
// the failure inside the checked text.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return e.Msg
}

// ValidateProgram checks that code parses as a JavaScript program.
func ValidateProgram(code string) error {
	return check(code, code, 0)
}

// ValidateExpression checks that code parses as a single JavaScript
// expression.
func ValidateExpression(code string) error {
	expr, err := singleExpression(code)
	if err != nil {
		return err
	}
	return check("("+expr+"\n)", code, 1)
}

// Normalize parses code and prints it back in esbuild's canonical layout.
// Module syntax is kept as written.
func Normalize(code string) (string, error) {
	res := api.Transform(code, transformOptions())
	if len(res.Errors) > 0 {
		return "", syntaxError(code, res.Errors[0], 0)
	}
	return string(res.Code), nil
}

func transformOptions() api.TransformOptions {
	return api.TransformOptions{
		Loader:   api.LoaderJS,
		LogLevel: api.LogLevelSilent,
		Charset:  api.CharsetUTF8,
	}
}

// check transforms wrapped and maps the first error back into original,
// which starts shift bytes into wrapped.
func check(wrapped, original string, shift int) error {
	res := api.Transform(wrapped, transformOptions())
	if len(res.Errors) == 0 {
		return nil
	}
	err := syntaxError(wrapped, res.Errors[0], shift)
	if err.Offset > len(original) {
		err.Offset = len(original)
	}
	return err
}

func syntaxError(code string, msg api.Message, shift int) *SyntaxError {
	offset := 0
	if loc := msg.Location; loc != nil {
		offset = lineOffset(code, loc.Line) + loc.Column - shift
	}
	if offset < 0 {
		offset = 0
	}
	return &SyntaxError{Msg: msg.Text, Offset: offset}
}

// lineOffset returns the byte offset of the start of the 1-based line.
func lineOffset(code string, line int) int {
	offset := 0
	for l := 1; l < line; l++ {
		i := strings.IndexByte(code[offset:], '\n')
		if i < 0 {
			return len(code)
		}
		offset += i + 1
	}
	return offset
}

// singleExpression rejects text that would only parse as an expression once
// wrapped in parentheses: statements, declarations and blocks, or text that
// closes the wrapping parenthesis itself. It returns code without a trailing
// semicolon.
func singleExpression(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "", &SyntaxError{Msg: "Unexpected end of input", Offset: 0}
	}
	for _, kw := range []string{"function", "class", "var", "let", "const", "if", "for", "while", "return"} {
		if rest, ok := strings.CutPrefix(trimmed, kw); ok && (rest == "" || !isIdentPart(rest[0])) {
			return "", &SyntaxError{Msg: fmt.Sprintf("Unexpected %q", kw), Offset: strings.Index(code, kw)}
		}
	}
	if trimmed[0] == '{' {
		return "", &SyntaxError{Msg: "Unexpected \"{\"", Offset: strings.IndexByte(code, '{')}
	}

	depth := 0
	end := len(code)
	if i := strings.LastIndexByte(code, ';'); i >= 0 && strings.TrimSpace(code[i+1:]) == "" {
		end = i
	}
	bad := -1
	scan(code[:end], func(tok token) bool {
		switch tok.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokPunct:
			if tok.text == ";" && depth == 0 {
				bad = tok.pos
				return false
			}
		}
		if depth < 0 {
			bad = tok.pos
			return false
		}
		return true
	})
	if bad >= 0 {
		return "", &SyntaxError{Msg: fmt.Sprintf("Unexpected %q", code[bad:bad+1]), Offset: bad}
	}
	return code[:end], nil
}
