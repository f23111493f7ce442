package pysrc

import "errors"

// SkipChildren can be returned from a WalkFunc to keep the walk out of the
// current node's body. Traversal resumes at the next sibling, and Walk does
// not surface SkipChildren to its caller.
var SkipChildren = errors.New("skip children")

// WalkFunc is called once per node during a Walk. Returning SkipChildren
// prunes the subtree below the node; any other non-nil error aborts the
// traversal and becomes Walk's return value.
type WalkFunc func(n *Node) error

// Walk traverses the definition tree rooted at root in depth-first
// pre-order: a node is visited before its body, and siblings are visited in
// source order. A nil root is a no-op.
func Walk(root *Node, fn WalkFunc) error {
	if root == nil {
		return nil
	}

	switch err := fn(root); {
	case errors.Is(err, SkipChildren):
		return nil
	case err != nil:
		return err
	}

	for c := root.FirstChild; c != nil; c = c.Next {
		if err := Walk(c, fn); err != nil {
			return err
		}
	}

	return nil
}

// WalkDefinitions visits only class and function nodes, in the same
// pre-order as Walk. Module and import nodes are passed over without
// invoking fn.
func WalkDefinitions(root *Node, fn WalkFunc) error {
	return Walk(root, func(n *Node) error {
		if !n.IsDefinition() {
			return nil
		}
		return fn(n)
	})
}

// FindAll collects every node for which pred returns true, in visit order.
func FindAll(root *Node, pred func(n *Node) bool) []*Node {
	var out []*Node

	_ = Walk(root, func(n *Node) error {
		if pred(n) {
			out = append(out, n)
		}
		return nil
	})

	return out
}

// errFoundNode aborts a search walk once FindFirst has its answer.
var errFoundNode = errors.New("node found")

// FindFirst returns the first node in pre-order for which pred returns
// true, or nil when nothing matches.
func FindFirst(root *Node, pred func(n *Node) bool) *Node {
	var hit *Node

	_ = Walk(root, func(n *Node) error {
		if pred(n) {
			hit = n
			return errFoundNode
		}
		return nil
	})

	return hit
}

// FindByKind returns every node whose Kind equals kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}
