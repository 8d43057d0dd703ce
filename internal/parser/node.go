package parser

// NodeType discriminates the node kinds produced by Parse.
type NodeType uint8

const (
	FragmentNode NodeType = iota
	TextNode
	ElementNode
	CommentNode
	DoctypeNode
)

// Attr is one attribute of a start tag, with the byte offsets needed to
// rewrite it in place. Name case is preserved as written in the source.
type Attr struct {
	Name  string
	Value string

	// WsStart is the offset of the whitespace separating this attribute
	// from the previous attribute or the tag name.
	WsStart   int
	NameStart int
	NameEnd   int
	// ValStart/ValEnd span the raw value, excluding quotes. Both equal
	// NameEnd for a valueless attribute.
	ValStart int
	ValEnd   int
	// End is one past the attribute, including a closing quote.
	End    int
	Quoted bool
}

// Node is a source-faithful fragment-tree node. All offsets index into the
// markup string given to Parse. For elements, End spans past the end tag;
// EndTagStart equals End when the element has no end tag in the source.
type Node struct {
	Type NodeType

	// Tag is the lowercased element name. Empty for non-elements.
	Tag string
	// Data holds raw text or comment content (without <!-- -->), or the
	// full raw token for doctype nodes.
	Data string

	Attrs []Attr

	Parent   *Node
	Children []*Node

	Start       int
	End         int
	AttrsEnd    int // one past the last attribute (elements)
	StartTagEnd int // one past the '>' of the start tag (elements)
	EndTagStart int // first byte of the end tag (elements)
	SelfClosing bool
}

// AppendChild links c as the last child of n.
func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// AttrValue returns the raw value of the named attribute, if present.
func (n *Node) AttrValue(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
