package lint

import "github.com/yaklabco/gopystyle/pkg/pysrc"

// NodeCache buckets definition nodes by kind on first use so rules share a
// single tree walk per file. Without it the class-naming and function-naming
// rules would each traverse the whole module; with it the walk happens once
// and both read the buckets.
//
// Returned slices are the cache itself. A caller that wants to reorder or
// filter must copy first, or every later rule sees the damage.
//
// A NodeCache belongs to exactly one RuleContext and is never touched from
// two goroutines: rules run sequentially within a file, and concurrent
// files each build their own cache.
type NodeCache struct {
	classes     []*pysrc.Node
	functions   []*pysrc.Node
	definitions []*pysrc.Node

	built bool
}

func newNodeCache() *NodeCache {
	return &NodeCache{}
}

// build walks the definition tree once. Accessors afterwards are plain
// field reads. Files where no rule asks for definitions never build.
func (nc *NodeCache) build(root *pysrc.Node) {
	if nc.built || root == nil {
		return
	}

	// Typical modules carry far more functions than classes.
	nc.classes = make([]*pysrc.Node, 0, 8)
	nc.functions = make([]*pysrc.Node, 0, 32)
	nc.definitions = make([]*pysrc.Node, 0, 40)

	//nolint:errcheck // The visitor never fails.
	pysrc.WalkDefinitions(root, func(node *pysrc.Node) error {
		switch node.Kind {
		case pysrc.NodeClass:
			nc.classes = append(nc.classes, node)
			nc.definitions = append(nc.definitions, node)
		case pysrc.NodeFunction:
			nc.functions = append(nc.functions, node)
			nc.definitions = append(nc.definitions, node)
		}
		return nil
	})

	nc.built = true
}

// Classes returns every class definition in document order.
func (nc *NodeCache) Classes() []*pysrc.Node { return nc.classes }

// Functions returns every function definition in document order.
func (nc *NodeCache) Functions() []*pysrc.Node { return nc.functions }

// Definitions returns classes and functions together in document order.
func (nc *NodeCache) Definitions() []*pysrc.Node { return nc.definitions }
