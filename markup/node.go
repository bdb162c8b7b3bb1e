// Package markup reads template documents into a node tree that keeps the
// source casing of tag and attribute names and the byte offsets needed for
// error reporting.
package markup

// NodeType identifies the kind of a Node.
type NodeType uint32

const (
	DocumentNode NodeType = iota
	ElementNode
	TextNode
	CommentNode
)

// Attribute is a single name/value pair on an element, in source order.
type Attribute struct {
	Key string
	Val string
}

// Node is an element, text or comment in a parsed template.
//
// Offset is the byte offset of the first byte of the node in the source.
// For elements TagEnd is the offset just past the start tag, for other nodes
// it is the offset just past the node itself.
type Node struct {
	Type     NodeType
	Data     string // tag name, text content or comment text
	Attr     []Attribute
	Children []*Node
	Parent   *Node
	Offset   int
	TagEnd   int
}

// IsElement reports whether n is an element named name.
func (n *Node) IsElement(name string) bool {
	return n != nil && n.Type == ElementNode && n.Data == name
}

// Attribute returns the value of the attribute named key.
func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttr reports whether the attribute named key is present, even if empty.
func (n *Node) HasAttr(key string) bool {
	_, ok := n.Attribute(key)
	return ok
}

// SetAttr replaces the value of key, appending the attribute when missing.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, Attribute{Key: key, Val: val})
}

// Elements returns the element children of n in order.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Type == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// AppendChild adds c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}
