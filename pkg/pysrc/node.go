package pysrc

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind discriminates definition tree nodes.
type NodeKind uint16

// The tree only models the structure PEP 8 naming and layout rules care
// about: the module itself and its class and def statements.
const (
	NodeModule NodeKind = iota

	NodeClass
	NodeFunction
)

// Node is one entry in a file's definition tree. The tree mirrors the
// lexical nesting of class and def statements; siblings are linked in
// source order.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Name is the defined identifier, empty for the module node.
	Name string

	// Async marks functions introduced by 'async def'.
	Async bool

	// Line (1-based) and Col (0-based bytes) locate the introducing
	// keyword.
	Line int
	Col  int

	// NameStart and NameEnd are byte offsets of the identifier in the
	// file content, -1 when the node has no name.
	NameStart int
	NameEnd   int

	// Indent is the byte width of the definition line's leading
	// whitespace, -1 for the module node.
	Indent int

	// FirstToken and LastToken index into FileSnapshot.Tokens, -1 when
	// the span was never recorded.
	FirstToken int
	LastToken  int

	File *FileSnapshot
}

// IsDefinition reports whether the node is a class or function.
func (n *Node) IsDefinition() bool {
	return n.Kind == NodeClass || n.Kind == NodeFunction
}

// HasChildren reports whether any definitions nest inside this one.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount counts the node's direct children.
func (n *Node) ChildCount() int {
	var count int
	for c := n.FirstChild; c != nil; c = c.Next {
		count++
	}
	return count
}

// Children collects the direct children into a slice.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.Next {
		out = append(out, c)
	}
	return out
}
