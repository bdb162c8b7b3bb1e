package markup

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// SyntaxError reports markup that could not be read into a tree.
type SyntaxError struct {
	Msg    string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("markup syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads src into a tree rooted at a DocumentNode.
//
// Elements nest the way they are written: there are no implied end tags and
// no HTML5 tree fixups, so void elements such as <img> keep any following
// content as children until their parent closes. Elements still open at the
// end of input are closed implicitly. A closing tag without a matching open
// element is a SyntaxError.
//
// The html.Tokenizer lowercases names, so tag and attribute names are
// recovered from the raw token bytes to keep component names and
// camelCase props like onClick intact.
func Parse(src string) (*Node, error) {
	doc := &Node{Type: DocumentNode, TagEnd: len(src)}
	stack := []*Node{doc}

	z := html.NewTokenizer(strings.NewReader(src))
	pos := 0
	for {
		tt := z.Next()
		// Raw must be copied before TagName, which lowercases the buffer in place.
		raw := string(z.Raw())
		start := pos
		pos += len(raw)
		top := stack[len(stack)-1]

		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, &SyntaxError{Msg: err.Error(), Offset: start}
			}
			return doc, nil

		case html.TextToken:
			top.AppendChild(&Node{Type: TextNode, Data: string(z.Text()), Offset: start, TagEnd: pos})

		case html.CommentToken:
			top.AppendChild(&Node{Type: CommentNode, Data: string(z.Text()), Offset: start, TagEnd: pos})

		case html.StartTagToken, html.SelfClosingTagToken:
			n := &Node{
				Type:   ElementNode,
				Data:   rawTagName(raw[1:]),
				Attr:   readAttributes(z, raw),
				Offset: start,
				TagEnd: pos,
			}
			top.AppendChild(n)
			if tt == html.StartTagToken {
				stack = append(stack, n)
			}

		case html.EndTagToken:
			name := rawTagName(raw[2:])
			i := len(stack) - 1
			for ; i > 0; i-- {
				if stack[i].Data == name {
					break
				}
			}
			if i == 0 {
				return nil, &SyntaxError{Msg: fmt.Sprintf("unexpected closing tag </%s>", name), Offset: start}
			}
			stack = stack[:i]
		}
	}
}

// rawTagName reads a tag name from the start of s.
func rawTagName(s string) string {
	end := strings.IndexAny(s, " \t\n\r\f/>")
	if end < 0 {
		return s
	}
	return s[:end]
}

// readAttributes collects the attributes of the current tag token. Values
// come from the tokenizer (entities decoded), names from the raw bytes.
func readAttributes(z *html.Tokenizer, raw string) []Attribute {
	_, more := z.TagName()
	var attrs []Attribute
	for more {
		var key, val []byte
		key, val, more = z.TagAttr()
		attrs = append(attrs, Attribute{Key: string(key), Val: string(val)})
	}

	names := rawAttrNames(raw)
	if len(names) == len(attrs) {
		for i := range attrs {
			if strings.EqualFold(names[i], attrs[i].Key) {
				attrs[i].Key = names[i]
			}
		}
	}
	return attrs
}

// rawAttrNames scans a raw start tag and returns its attribute names in
// order, following the same boundaries the html tokenizer uses.
func rawAttrNames(raw string) []string {
	i := 1 + len(rawTagName(raw[1:]))
	var names []string
	for i < len(raw) {
		for i < len(raw) && isTagSpace(raw[i]) || i < len(raw) && raw[i] == '/' {
			i++
		}
		if i >= len(raw) || raw[i] == '>' {
			break
		}

		start := i
		i++ // a leading '=' belongs to the name
		for i < len(raw) && !isTagSpace(raw[i]) && raw[i] != '=' && raw[i] != '>' && raw[i] != '/' {
			i++
		}
		names = append(names, raw[start:i])

		j := i
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j >= len(raw) || raw[j] != '=' {
			continue
		}
		j++
		for j < len(raw) && isTagSpace(raw[j]) {
			j++
		}
		if j < len(raw) && (raw[j] == '"' || raw[j] == '\'') {
			q := raw[j]
			j++
			for j < len(raw) && raw[j] != q {
				j++
			}
			j++
		} else {
			for j < len(raw) && !isTagSpace(raw[j]) && raw[j] != '>' {
				j++
			}
		}
		i = j
	}
	return names
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
