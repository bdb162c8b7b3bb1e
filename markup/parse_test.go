package markup

import (
	"errors"
	"testing"
)

func TestParse_PreservesCaseOfTagsAndAttributes(t *testing.T) {
	src := `<MyList onClick="() => go()" data-Id="x"><Row/></MyList>`
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	root := doc.Elements()
	if len(root) != 1 {
		t.Fatalf("Expected 1 root element, got %d", len(root))
	}
	list := root[0]
	if list.Data != "MyList" {
		t.Errorf("Expected tag 'MyList', got '%s'", list.Data)
	}
	if len(list.Attr) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(list.Attr))
	}
	if list.Attr[0].Key != "onClick" || list.Attr[0].Val != "() => go()" {
		t.Errorf("Unexpected first attribute: %+v", list.Attr[0])
	}
	if list.Attr[1].Key != "data-Id" {
		t.Errorf("Expected attribute 'data-Id', got '%s'", list.Attr[1].Key)
	}

	rows := list.Elements()
	if len(rows) != 1 || rows[0].Data != "Row" {
		t.Fatalf("Expected single <Row> child, got %+v", rows)
	}
	if rows[0].Parent != list {
		t.Error("Row parent link not set")
	}
}

func TestParse_RecordsOffsets(t *testing.T) {
	src := "<div>\n  <span a=\"1\">hi</span>\n</div>"
	doc, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	div := doc.Elements()[0]
	if div.Offset != 0 || div.TagEnd != 5 {
		t.Errorf("Expected div at [0,5), got [%d,%d)", div.Offset, div.TagEnd)
	}
	span := div.Elements()[0]
	if want := 8; span.Offset != want {
		t.Errorf("Expected span offset %d, got %d", want, span.Offset)
	}
	if want := 8 + len(`<span a="1">`); span.TagEnd != want {
		t.Errorf("Expected span tag end %d, got %d", want, span.TagEnd)
	}
	text := span.Children[0]
	if text.Type != TextNode || text.Data != "hi" {
		t.Errorf("Expected text 'hi', got %+v", text)
	}
}

func TestParse_VoidElementsKeepFollowingContent(t *testing.T) {
	doc, err := Parse(`<div><img src="a.png"><span>x</span></div>`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	img := doc.Elements()[0].Elements()[0]
	if img.Data != "img" {
		t.Fatalf("Expected img, got %s", img.Data)
	}
	// normalization of void elements is the compiler's job
	if len(img.Elements()) != 1 {
		t.Errorf("Expected span nested under unclosed img, got %d children", len(img.Elements()))
	}
}

func TestParse_CommentsAndEntities(t *testing.T) {
	doc, err := Parse(`<p><!-- note -->a &amp; b</p>`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	p := doc.Elements()[0]
	if len(p.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(p.Children))
	}
	if p.Children[0].Type != CommentNode || p.Children[0].Data != " note " {
		t.Errorf("Unexpected comment node %+v", p.Children[0])
	}
	if p.Children[1].Data != "a & b" {
		t.Errorf("Expected decoded text 'a & b', got %q", p.Children[1].Data)
	}
}

func TestParse_UnmatchedClosingTag(t *testing.T) {
	_, err := Parse(`<div></span></div>`)
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Expected *SyntaxError, got %v", err)
	}
	if syntaxErr.Offset != 5 {
		t.Errorf("Expected offset 5, got %d", syntaxErr.Offset)
	}
}

func TestNode_SetAttrAppendsOrReplaces(t *testing.T) {
	n := &Node{Type: ElementNode, Data: "div", Attr: []Attribute{{Key: "id", Val: "a"}}}
	n.SetAttr("key", "12")
	n.SetAttr("id", "b")

	if v, _ := n.Attribute("id"); v != "b" {
		t.Errorf("Expected id 'b', got '%s'", v)
	}
	if n.Attr[1].Key != "key" || n.Attr[1].Val != "12" {
		t.Errorf("Expected key appended last, got %+v", n.Attr)
	}
	if !n.HasAttr("key") || n.HasAttr("missing") {
		t.Error("HasAttr mismatch")
	}
}

func TestRawAttrNames(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{`<a>`, nil},
		{`<a b>`, []string{"b"}},
		{`<a rt-if="x > 1" onClick='y' z=3/>`, []string{"rt-if", "onClick", "z"}},
		{`<a B = "1" C>`, []string{"B", "C"}},
	}
	for _, tt := range tests {
		got := rawAttrNames(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("rawAttrNames(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("rawAttrNames(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		}
	}
}
