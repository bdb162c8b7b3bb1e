package compiler

import "github.com/vcrobe/rtc/markup"

// normalizeSelfClosing moves the element children of void elements and
// rt-include after them, recursively. Written markup such as
// <img src="a"><span/></img> keeps the span, as a sibling of the image.
// It returns the normalized replacement for nodes.
func normalizeSelfClosing(nodes []*markup.Node) []*markup.Node {
	var out []*markup.Node
	for _, n := range nodes {
		if n.Type != markup.ElementNode {
			out = append(out, n)
			continue
		}
		n.Children = normalizeSelfClosing(n.Children)
		out = append(out, n)
		if !isSelfClosing(n.Data) {
			continue
		}

		var kept []*markup.Node
		for _, c := range n.Children {
			if c.Type == markup.ElementNode {
				c.Parent = n.Parent
				out = append(out, c)
				continue
			}
			kept = append(kept, c)
		}
		n.Children = kept
	}
	return out
}
