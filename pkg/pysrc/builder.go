package pysrc

// NewNode allocates a node of the given kind. Token and name indexes
// start at -1, meaning "not recorded yet".
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:       kind,
		NameStart:  -1,
		NameEnd:    -1,
		Indent:     -1,
		FirstToken: -1,
		LastToken:  -1,
	}
}

// NewModule allocates the root node for a file's definition tree.
func NewModule() *Node {
	return NewNode(NodeModule)
}

// AppendChild links child as the last child of parent. A child already
// sitting in some tree is detached first, so a node never has more than
// one parent.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}

	detach(child)
	child.Parent = parent

	if parent.LastChild == nil {
		parent.FirstChild, parent.LastChild = child, child
		return
	}

	child.Prev = parent.LastChild
	parent.LastChild.Next = child
	parent.LastChild = child
}

// RemoveChild unlinks child from parent. Nothing happens when child does
// not actually belong to parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}
	detach(child)
}

// detach splices n out of its sibling list and clears all three links.
func detach(n *Node) {
	if n.Parent == nil {
		return
	}

	if n.Prev == nil {
		n.Parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}

	if n.Next == nil {
		n.Parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}

	n.Parent = nil
	n.Prev = nil
	n.Next = nil
}

// SetTokenRange records the index of the first and last token spanned by n.
func SetTokenRange(n *Node, first, last int) {
	if n == nil {
		return
	}
	n.FirstToken = first
	n.LastToken = last
}

// SetFile points n and every node below it at the snapshot that owns them.
func SetFile(n *Node, file *FileSnapshot) {
	_ = Walk(n, func(d *Node) error {
		d.File = file
		return nil
	})
}
