package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vcrobe/rtc/markup"
)

func tagNames(nodes []*markup.Node) []string {
	var names []string
	for _, n := range nodes {
		if n.Type == markup.ElementNode {
			names = append(names, n.Data)
		}
	}
	return names
}

func TestNormalizeSelfClosing(t *testing.T) {
	doc, err := markup.Parse(`<div><img src="a">text<span></span></img><rt-include src="b"><i></i></rt-include><p><br><b></b></br></p></div>`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	doc.Children = normalizeSelfClosing(doc.Children)
	div := doc.Elements()[0]

	if diff := cmp.Diff([]string{"img", "span", "rt-include", "i", "p"}, tagNames(div.Children)); diff != "" {
		t.Errorf("div children mismatch (-want +got):\n%s", diff)
	}
	img := div.Children[0]
	if len(img.Children) != 1 || img.Children[0].Type != markup.TextNode {
		t.Errorf("Expected img to keep only its text, got %d children", len(img.Children))
	}
	for _, c := range div.Elements() {
		if c.Parent != div {
			t.Errorf("Expected %s to be reparented to div", c.Data)
		}
	}
	p := div.Children[len(div.Children)-1]
	if diff := cmp.Diff([]string{"br", "b"}, tagNames(p.Children)); diff != "" {
		t.Errorf("nested children mismatch (-want +got):\n%s", diff)
	}
}
