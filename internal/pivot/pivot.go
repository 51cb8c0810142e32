// Package pivot builds the dashboard's grouping tree: nested partitions
// of the merged ping rows over a user-ordered dimension list, with
// per-group SOC-loss sums propagated into every contained row as
// fixed-width sortable keys.
package pivot

import (
	"fmt"

	"github.com/swapdash/telemetry-backend-go/internal/models"
)

// DefaultMaxDepth bounds the pivot nesting. Six levels covers every
// dimension combination the dashboard offers.
const DefaultMaxDepth = 6

// sortKeyWidth is the fixed width of an encoded aggregate sum. Wide
// enough that any representable sum keeps lexicographic order equal to
// numeric order.
const sortKeyWidth = 15

// EncodeSum renders an aggregate sum as a zero-padded fixed-width
// decimal with three fractional digits. Sums are non-negative, so a
// plain string comparison of two encodings orders them numerically.
func EncodeSum(sum float64) string {
	return fmt.Sprintf("%0*.3f", sortKeyWidth, sum)
}

// ZeroKey is the sentinel for sort-key slots deeper than a row's
// ancestor chain.
func ZeroKey() string {
	return EncodeSum(0)
}

// Node is one group in the pivot hierarchy. Every node exposes the same
// interface regardless of depth; leaves simply have no children.
type Node struct {
	key      string
	parent   *Node
	children []*Node
	ownRows  []*models.PivotRow
	sum      float64
}

// Key returns the dimension value this group was partitioned on. The
// root's key is empty.
func (n *Node) Key() string { return n.key }

// Parent returns the enclosing group, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the subgroups in first-appearance order.
func (n *Node) Children() []*Node { return n.children }

// OwnRows returns the rows attached directly to this node. Only nodes
// with no deeper dimension carry rows of their own.
func (n *Node) OwnRows() []*models.PivotRow { return n.ownRows }

// Sum is the aggregate SOC loss over the node's subtree.
func (n *Node) Sum() float64 { return n.sum }

// Depth is 1 + the number of ancestors, walking the parent chain
// upward. The root is depth 0 and is not itself a group. This is
// distinct from SubtreeDepth: a group's slot in the sort-key vector
// depends on where it hangs, not on how deep its subtree goes.
func (n *Node) Depth() int {
	d := 0
	for p := n; p.parent != nil; p = p.parent {
		d++
	}
	return d
}

// SubtreeDepth is the downward depth: 1 for a terminal group, 1 + the
// deepest child subtree otherwise. The table UI uses it only to hide
// the expand toggle on terminal groups.
func (n *Node) SubtreeDepth() int {
	if len(n.children) == 0 {
		return 1
	}
	max := 0
	for _, c := range n.children {
		if d := c.SubtreeDepth(); d > max {
			max = d
		}
	}
	return 1 + max
}

// Terminal reports whether the node has no subgroups.
func (n *Node) Terminal() bool { return len(n.children) == 0 }

// Rows collects every row contained anywhere in the node's subtree.
func (n *Node) Rows() []*models.PivotRow {
	rows := make([]*models.PivotRow, 0, len(n.ownRows))
	rows = append(rows, n.ownRows...)
	for _, c := range n.children {
		rows = append(rows, c.Rows()...)
	}
	return rows
}

// Path returns the key chain from the outermost group down to this
// node. The root's path is empty.
func (n *Node) Path() []string {
	if n.parent == nil {
		return nil
	}
	return append(n.parent.Path(), n.key)
}

// Tree is one built pivot over a row set.
type Tree struct {
	root     *Node
	dims     []string
	maxDepth int
}

// Root returns the ungrouped top node holding all rows.
func (t *Tree) Root() *Node { return t.root }

// Dimensions returns the effective dimension list: the requested order
// with unknown names dropped and the depth cap applied.
func (t *Tree) Dimensions() []string { return t.dims }

// MaxDepth returns the sort-key slot count of the tree's rows.
func (t *Tree) MaxDepth() int { return t.maxDepth }

// Find resolves a group by its key path from the root. A nil result
// means no group matches — typically a stale selection after a
// re-group.
func (t *Tree) Find(path []string) *Node {
	node := t.root
	for _, key := range path {
		var next *Node
		for _, c := range node.children {
			if c.key == key {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		node = next
	}
	return node
}

// Build groups rows by the ordered dimension list and propagates the
// per-depth aggregate keys.
//
// Unknown dimension names are skipped rather than failing the render,
// and the list is capped at maxDepth levels. An empty effective list
// yields a tree whose root is a single ungrouped leaf over all rows.
//
// Every row's SortKeys slice is rewritten: slot k-1 receives the
// encoded subtree sum of the row's ancestor group at depth k, for every
// depth on the row's root-to-leaf path; deeper slots keep the zero
// sentinel. Sorting the flat row set by (slot maxDepth desc, ...,
// slot 1 desc) then reproduces "groups ordered by descending aggregate
// at every level, ties broken by the next-outer level" with no
// group-aware comparator downstream.
func Build(rows []*models.PivotRow, dims []string, maxDepth int) *Tree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	effective := make([]string, 0, len(dims))
	for _, d := range dims {
		if !models.KnownDimension(d) {
			continue
		}
		effective = append(effective, d)
		if len(effective) == maxDepth {
			break
		}
	}

	for _, r := range rows {
		keys := make([]string, maxDepth)
		for i := range keys {
			keys[i] = ZeroKey()
		}
		r.SortKeys = keys
	}

	root := &Node{}
	partition(root, rows, effective)
	propagate(root, maxDepth)

	return &Tree{root: root, dims: effective, maxDepth: maxDepth}
}

// partition splits node's row set on the first remaining dimension,
// recursing until the dimension list is exhausted.
func partition(node *Node, rows []*models.PivotRow, dims []string) {
	if len(dims) == 0 {
		node.ownRows = rows
		for _, r := range rows {
			node.sum += r.SOCLost
		}
		return
	}

	dim := dims[0]
	byKey := make(map[string][]*models.PivotRow)
	order := make([]string, 0)
	for _, r := range rows {
		val, _ := r.Field(dim)
		if _, seen := byKey[val]; !seen {
			order = append(order, val)
		}
		byKey[val] = append(byKey[val], r)
	}

	for _, key := range order {
		child := &Node{key: key, parent: node}
		partition(child, byKey[key], dims[1:])
		node.children = append(node.children, child)
		node.sum += child.sum
	}
}

// propagate writes each group's encoded sum into the matching sort-key
// slot of every row in its subtree.
func propagate(node *Node, maxDepth int) {
	if depth := node.Depth(); depth >= 1 && depth <= maxDepth {
		enc := EncodeSum(node.sum)
		for _, r := range node.Rows() {
			r.SortKeys[depth-1] = enc
		}
	}
	for _, c := range node.children {
		propagate(c, maxDepth)
	}
}
