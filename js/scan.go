package js

import "strings"

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokOpen
	tokClose
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// scan splits code into coarse tokens. It understands strings, template
// literals with substitutions and comments well enough to never report an
// identifier or bracket that sits inside one of them. Regular expression
// literals are not recognized.
func scan(code string, yield func(token) bool) {
	var subst []int // bracket depth at which each open ${ resumes its template
	depth := 0
	inTemplate := false
	i := 0
	emit := func(kind tokenKind, start, end int) bool {
		return yield(token{kind: kind, text: code[start:end], pos: start})
	}

	for i < len(code) {
		if inTemplate {
			for i < len(code) {
				c := code[i]
				if c == '\\' {
					i += 2
					continue
				}
				if c == '`' {
					i++
					inTemplate = false
					break
				}
				if c == '$' && i+1 < len(code) && code[i+1] == '{' {
					i += 2
					subst = append(subst, depth)
					inTemplate = false
					break
				}
				i++
			}
			continue
		}

		c := code[i]
		start := i
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++

		case c == '/' && i+1 < len(code) && code[i+1] == '/':
			if nl := strings.IndexByte(code[i:], '\n'); nl >= 0 {
				i += nl
			} else {
				i = len(code)
			}

		case c == '/' && i+1 < len(code) && code[i+1] == '*':
			if end := strings.Index(code[i+2:], "*/"); end >= 0 {
				i += end + 4
			} else {
				i = len(code)
			}

		case c == '"' || c == '\'':
			i++
			for i < len(code) && code[i] != c {
				if code[i] == '\\' {
					i++
				}
				i++
			}
			i++
			if i > len(code) {
				i = len(code)
			}
			if !emit(tokString, start, i) {
				return
			}

		case c == '`':
			i++
			inTemplate = true
			if !emit(tokString, start, i) {
				return
			}

		case isIdentStart(c):
			for i < len(code) && isIdentPart(code[i]) {
				i++
			}
			if !emit(tokIdent, start, i) {
				return
			}

		case c >= '0' && c <= '9':
			for i < len(code) && (isIdentPart(code[i]) || code[i] == '.') {
				i++
			}
			if !emit(tokNumber, start, i) {
				return
			}

		case c == '(' || c == '[' || c == '{':
			i++
			depth++
			if !emit(tokOpen, start, i) {
				return
			}

		case c == ')' || c == ']' || c == '}':
			i++
			if c == '}' && len(subst) > 0 && subst[len(subst)-1] == depth {
				subst = subst[:len(subst)-1]
				inTemplate = true
				continue
			}
			depth--
			if !emit(tokClose, start, i) {
				return
			}

		default:
			i++
			switch {
			case c == '.' && strings.HasPrefix(code[i:], ".."):
				i += 2
			case c == '?' && i < len(code) && code[i] == '.' && (i+1 >= len(code) || code[i+1] < '0' || code[i+1] > '9'):
				i++
			}
			if !emit(tokPunct, start, i) {
				return
			}
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}

var keywords = map[string]bool{
	"async": true, "await": true, "break": true, "case": true, "catch": true,
	"class": true, "const": true, "continue": true, "debugger": true,
	"default": true, "delete": true, "do": true, "else": true, "export": true,
	"extends": true, "false": true, "finally": true, "for": true,
	"function": true, "if": true, "import": true, "in": true,
	"instanceof": true, "let": true, "new": true, "null": true, "of": true,
	"return": true, "static": true, "super": true, "switch": true,
	"this": true, "throw": true, "true": true, "try": true, "typeof": true,
	"var": true, "void": true, "while": true, "with": true, "yield": true,
}

// References returns the free identifiers read by an expression, in order
// of appearance. Property names after '.' and object literal keys are not
// references; keywords are skipped.
func References(code string) []string {
	var toks []token
	scan(code, func(t token) bool {
		toks = append(toks, t)
		return true
	})

	type frame struct {
		brace   bool
		ternary int
	}
	frames := []frame{{}}
	var refs []string
	for i, t := range toks {
		top := &frames[len(frames)-1]
		switch t.kind {
		case tokOpen:
			frames = append(frames, frame{brace: t.text == "{"})
		case tokClose:
			if len(frames) > 1 {
				frames = frames[:len(frames)-1]
			}
		case tokPunct:
			switch {
			case t.text == "?":
				top.ternary++
			case t.text == ":" && top.ternary > 0:
				top.ternary--
			}
		case tokIdent:
			if keywords[t.text] {
				continue
			}
			if i > 0 && toks[i-1].kind == tokPunct && (toks[i-1].text == "." || toks[i-1].text == "?.") {
				continue
			}
			if i+1 < len(toks) && toks[i+1].kind == tokPunct && toks[i+1].text == ":" && top.brace && top.ternary == 0 {
				continue
			}
			refs = append(refs, t.text)
		}
	}
	return refs
}

// IsIdentifier reports whether s is a plain identifier name.
func IsIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) || keywords[s] {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}
