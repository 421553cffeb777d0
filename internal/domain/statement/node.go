package statement

import (
	"github.com/google/uuid"
)

// Node is a line item in the statement tree. Every node carries its own
// eight amount fields and may additionally own an ordered collection of
// children, so a header line ("Studio") rolls up its own display totals
// while containing child leaves ("Unit 101"). A node's stored amounts are
// treated as a display cache once it has children; Sum is the source of
// truth for what they should contain.
type Node struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Amounts Amounts `json:"amounts"`

	// IsSubtotal marks a read-only computed rollup row. Subtotal nodes are
	// excluded from their parent's organic sum to avoid double counting.
	IsSubtotal bool `json:"isSubtotal,omitempty"`

	// Pinned items cannot be deleted, moved, or (unless AllowClone is set)
	// cloned. The section anchors and synthesized subtotals are pinned.
	Pinned     bool `json:"pinned,omitempty"`
	AllowClone bool `json:"allowClone,omitempty"`

	// LinkedUnitID is a weak reference to a record in the external Units
	// ledger. The tree never owns the unit; consistency is kept through
	// explicit sync calls issued by the caller.
	LinkedUnitID string `json:"linkedUnitId,omitempty"`

	ChildOrder []string         `json:"childOrder,omitempty"`
	Children   map[string]*Node `json:"children,omitempty"`
}

// NewLeaf creates a zero-valued leaf with a generated ID
func NewLeaf(label string) *Node {
	return &Node{
		ID:    uuid.NewString(),
		Label: label,
	}
}

// HasChildren reports whether the node owns any children
func (n *Node) HasChildren() bool {
	return len(n.ChildOrder) > 0
}

// NonSubtotalChildCount counts children that are not subtotal rows
func (n *Node) NonSubtotalChildCount() int {
	count := 0
	for _, id := range n.ChildOrder {
		if c := n.Children[id]; c != nil && !c.IsSubtotal {
			count++
		}
	}
	return count
}

// LinkedUnitIDs collects every linked-unit reference in the subtree rooted
// at n, in child order. Used after a cascading delete to issue the matching
// removals against the external Units ledger.
func (n *Node) LinkedUnitIDs() []string {
	var ids []string
	if n.LinkedUnitID != "" {
		ids = append(ids, n.LinkedUnitID)
	}
	for _, id := range n.ChildOrder {
		if c := n.Children[id]; c != nil {
			ids = append(ids, c.LinkedUnitIDs()...)
		}
	}
	return ids
}

// shallowCopy copies the node, its order slice, and its children map while
// sharing the child nodes themselves. This is the unit step of the
// copy-on-write spine clone: untouched branches stay shared so reactive
// callers get cheap change detection.
func (n *Node) shallowCopy() *Node {
	cp := *n
	if n.ChildOrder != nil {
		cp.ChildOrder = make([]string, len(n.ChildOrder))
		copy(cp.ChildOrder, n.ChildOrder)
	}
	if n.Children != nil {
		cp.Children = make(map[string]*Node, len(n.Children))
		for id, child := range n.Children {
			cp.Children[id] = child
		}
	}
	return &cp
}

// cloneSubtree deep-copies the subtree rooted at n, assigning fresh IDs
// throughout and relabeling the root. Linked-unit references are not
// carried onto copies: a clone is a new line, not a second owner of the
// original's unit record.
func (n *Node) cloneSubtree(label string) *Node {
	cp := *n
	cp.ID = uuid.NewString()
	cp.Label = label
	cp.LinkedUnitID = ""
	cp.Pinned = false
	if n.HasChildren() {
		cp.ChildOrder = make([]string, 0, len(n.ChildOrder))
		cp.Children = make(map[string]*Node, len(n.Children))
		for _, id := range n.ChildOrder {
			child := n.Children[id]
			if child == nil {
				continue
			}
			childCopy := child.cloneSubtree(child.Label)
			cp.ChildOrder = append(cp.ChildOrder, childCopy.ID)
			cp.Children[childCopy.ID] = childCopy
		}
	}
	return &cp
}
