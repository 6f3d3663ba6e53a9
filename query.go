package behave

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
)

type Operation int

const (
	OpAnd Operation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op       Operation
	children []QueryNode
	keys     []TypeKey
	// invalid is set when an item was neither a type key nor a query node.
	// It counts as a type no subject carries.
	invalid bool
}

type query struct {
	root QueryNode
}

func newQuery() Query {
	return &query{}
}

func newCompositeNode(op Operation, keys []TypeKey) *compositeNode {
	return &compositeNode{
		op:       op,
		children: make([]QueryNode, 0),
		keys:     keys,
	}
}

// nodeMask builds the mask of the node's behavior types.
// known is false when a type was never registered, so no subject can carry it.
func (n *compositeNode) nodeMask(resolver TypeResolver) (nodeMask mask.Mask, known bool) {
	known = !n.invalid
	for _, key := range n.keys {
		id, ok := resolver.IDOf(key)
		if !ok {
			known = false
			continue
		}
		nodeMask.Mark(uint32(id))
	}
	return nodeMask, known
}

func (n *compositeNode) Evaluate(resolver TypeResolver, present mask.Mask) bool {
	nodeMask, known := n.nodeMask(resolver)

	switch n.op {
	case OpAnd:
		if !known || !present.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(resolver, present) {
				return false
			}
		}
		return true

	case OpOr:
		if present.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(resolver, present) {
				return true
			}
		}
		return false

	case OpNot:
		for _, child := range n.children {
			if child.Evaluate(resolver, present) {
				return false
			}
		}
		return present.ContainsNone(nodeMask)
	}
	return false
}

func (q *query) And(items ...any) QueryNode {
	return q.node(OpAnd, items)
}

func (q *query) Or(items ...any) QueryNode {
	return q.node(OpOr, items)
}

func (q *query) Not(items ...any) QueryNode {
	return q.node(OpNot, items)
}

func (q *query) node(op Operation, items []any) QueryNode {
	keys, children, invalid := q.processItems(items...)
	node := newCompositeNode(op, keys)
	node.children = children
	node.invalid = invalid
	if q.root == nil {
		q.root = node
	}
	return node
}

// processItems accepts type keys, slices of type keys and nested query nodes.
// Anything else is reported and marks the node invalid.
func (q *query) processItems(items ...any) ([]TypeKey, []QueryNode, bool) {
	invalid := false
	keys := make([]TypeKey, 0)
	children := make([]QueryNode, 0)

	for _, item := range items {
		switch v := item.(type) {
		case TypeKey:
			keys = append(keys, v)
		case []TypeKey:
			keys = append(keys, v...)
		case QueryNode:
			children = append(children, v)
		default:
			invalid = true
			Config.logger.Warn("query item is not a behavior type key or query node",
				"item", item,
				"type", fmt.Sprintf("%T", item),
			)
		}
	}

	return keys, children, invalid
}

func (q *query) Evaluate(resolver TypeResolver, present mask.Mask) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(resolver, present)
}
