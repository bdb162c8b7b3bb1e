package compiler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vcrobe/rtc/js"
	"github.com/vcrobe/rtc/markup"
)

// getContextLines returns a formatted string with context lines around the error line.
// It shows 'contextSize' lines before and after the target line.
func getContextLines(source string, lineNumber int, contextSize int) string {
	lines := strings.Split(source, "\n")

	startLine := max(lineNumber-contextSize-1, 0)
	endLine := min(lineNumber+contextSize, len(lines))

	var result strings.Builder
	result.WriteString("\n")
	for i := startLine; i < endLine; i++ {
		lineNum := i + 1
		prefix := "  "
		if lineNum == lineNumber {
			prefix = "> "
		}
		result.WriteString(fmt.Sprintf("%s%4d | %s\n", prefix, lineNum, lines[i]))
	}
	return result.String()
}

// upperFirst returns s with its first letter in upper case.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// trimHTMLText trims whitespace like String.prototype.trim but keeps
// non-breaking spaces, which are meaningful in markup.
func trimHTMLText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return r != '\u00a0' && unicode.IsSpace(r) || r == '\ufeff'
	})
}

// attributesJSON renders the attributes of n for error messages.
func attributesJSON(n *markup.Node) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, a := range n.Attr {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(js.Quote(a.Key))
		b.WriteByte(':')
		b.WriteString(js.Quote(a.Val))
	}
	b.WriteByte('}')
	return b.String()
}

// asCompileError positions a collaborator error inside the document when it
// is not already a compile error.
func asCompileError(err error, source string, kind ErrorKind) error {
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	var syntaxErr *markup.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newOffsetError(source, syntaxErr.Offset, kind, err)
	}
	var jsErr *js.SyntaxError
	if errors.As(err, &jsErr) {
		return newOffsetError(source, jsErr.Offset, kind, err)
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
