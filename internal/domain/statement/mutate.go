package statement

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/shared"
)

// Structural limits. A header holds at most ten real rows; clone fan-out
// is capped the same way so one request cannot flood a section.
const (
	MaxChildren   = 10
	MaxCloneCount = 10
)

// newSubtotal builds the pinned computed rollup row synthesized the first
// time a node gains children.
func newSubtotal(parentLabel string) *Node {
	return &Node{
		ID:         uuid.NewString(),
		Label:      parentLabel + " Total",
		Pinned:     true,
		IsSubtotal: true,
	}
}

// disambiguate returns want, or "want (2)", "want (3)", ... until the
// label is unused among taken.
func disambiguate(taken map[string]struct{}, want string) string {
	if _, used := taken[want]; !used {
		return want
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)", want, n)
		if _, used := taken[candidate]; !used {
			return candidate
		}
	}
}

func labelSet(c container) map[string]struct{} {
	taken := make(map[string]struct{}, len(*c.order))
	for _, id := range *c.order {
		if n := c.items[id]; n != nil {
			taken[n.Label] = struct{}{}
		}
	}
	return taken
}

// refreshRollups recomputes the cached totals along the cloned spine after
// a mutation: every branch ancestor (and the mutated node itself, when it
// is a branch) gets Amounts = sum of its children, its subtotal child is
// updated to match, and the Net Rental Income row is refreshed. Must only
// be called on a section returned by cloneSpine with the same path.
func (s *Section) refreshRollups(path []string) {
	for i := len(path); i >= 1; i-- {
		node := s.Get(path[:i]...)
		if node == nil || !node.HasChildren() {
			continue
		}
		node.Amounts = node.ChildrenSum()
		for _, id := range node.ChildOrder {
			if c := node.Children[id]; c != nil && c.IsSubtotal {
				sub := c.shallowCopy()
				sub.Amounts = node.Amounts
				node.Children[id] = sub
			}
		}
	}
	if nri, ok := s.Items[NetRentalIncomeID]; ok {
		cp := nri.shallowCopy()
		cp.Amounts = s.NetRentalIncome()
		s.Items[NetRentalIncomeID] = cp
	}
}

// Edit applies a single-field edit to the node at path and reconciles the
// row's remaining fields against the property metrics. A nil input (the
// cleared cell) zeroes the family. Sign policy is enforced here and only
// here: moving a row across the Net Rental Income boundary does not touch
// stored values until the next edit.
func (s *Section) Edit(path []string, field Field, input decimal.NullDecimal, m Metrics) (*Section, error) {
	if !field.IsValid() {
		return nil, ErrUnknownField
	}
	if len(path) == 0 {
		return nil, ErrInvalidPath
	}
	cp, _, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, err
	}
	if node.IsSubtotal {
		return nil, ErrSubtotalReadOnly
	}
	if node.HasChildren() {
		return nil, shared.ErrInvalidState
	}
	if input.Valid && !field.IsRate() {
		input.Decimal = cp.Classify(path[0]).Apply(input.Decimal)
	}
	node.Amounts = Reconcile(node.Amounts, field, input, m)
	cp.refreshRollups(path)
	return cp, nil
}

// AddRootItem appends a new zero-valued root row, or inserts it before an
// existing root row when beforeID is set. Root labels are not required to
// be unique. An unknown beforeID falls back to appending, and an insertion
// that would land above Gross Scheduled Rent at the income root is clamped
// to directly after it.
func (s *Section) AddRootItem(label, beforeID string) (*Section, *Node, error) {
	cp, root, _, err := s.cloneSpine(nil)
	if err != nil {
		return nil, nil, err
	}
	node := NewLeaf(label)
	pos := len(*root.order)
	if beforeID != "" {
		if i := root.indexOf(beforeID); i >= 0 {
			pos = i
		}
	}
	if pos == 0 && cp.Key == SectionIncome &&
		len(*root.order) > 0 && (*root.order)[0] == GrossScheduledRentID {
		pos = 1
	}
	*root.order = append(*root.order, "")
	copy((*root.order)[pos+1:], (*root.order)[pos:])
	(*root.order)[pos] = node.ID
	root.items[node.ID] = node
	cp.refreshRollups(nil)
	return cp, node, nil
}

// AddChildren adds zero-valued child rows under the node at path, turning
// a leaf into a header on first use. The first call synthesizes the pinned
// subtotal row; new children always land before it. The request is
// all-or-nothing: if it would push the node past MaxChildren nothing
// changes. Duplicate labels within a parent are suffixed " (2)", " (3)"
// and so on.
func (s *Section) AddChildren(path []string, labels []string) (*Section, []*Node, error) {
	if len(path) == 0 {
		return nil, nil, ErrInvalidPath
	}
	if len(labels) == 0 {
		return nil, nil, shared.ErrInvalidInput
	}
	cp, _, parent, err := s.cloneSpine(path)
	if err != nil {
		return nil, nil, err
	}
	if parent.IsSubtotal {
		return nil, nil, ErrSubtotalReadOnly
	}
	if parent.NonSubtotalChildCount()+len(labels) > MaxChildren {
		return nil, nil, ErrMaxChildren
	}
	if parent.Children == nil {
		parent.Children = map[string]*Node{}
	}
	if !parent.HasChildren() {
		sub := newSubtotal(parent.Label)
		parent.ChildOrder = append(parent.ChildOrder, sub.ID)
		parent.Children[sub.ID] = sub
		parent.LinkedUnitID = ""
	}
	kids := parent.childContainer()
	taken := labelSet(kids)
	added := make([]*Node, 0, len(labels))
	for _, label := range labels {
		name := disambiguate(taken, label)
		taken[name] = struct{}{}
		child := NewLeaf(name)
		pos := len(parent.ChildOrder)
		for i, id := range parent.ChildOrder {
			if c := parent.Children[id]; c != nil && c.IsSubtotal {
				pos = i
				break
			}
		}
		parent.ChildOrder = append(parent.ChildOrder, "")
		copy(parent.ChildOrder[pos+1:], parent.ChildOrder[pos:])
		parent.ChildOrder[pos] = child.ID
		parent.Children[child.ID] = child
		added = append(added, child)
	}
	cp.refreshRollups(path)
	return cp, added, nil
}

// Promote converts the leaf at path into a header: the row's own amounts
// and unit link move onto a new first child carrying the same label, and
// the header itself becomes a computed rollup over that child. Used when a
// single linked unit gains siblings.
func (s *Section) Promote(path []string) (*Section, *Node, error) {
	if len(path) == 0 {
		return nil, nil, ErrInvalidPath
	}
	cp, _, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, nil, err
	}
	if node.IsSubtotal || node.Pinned {
		return nil, nil, ErrPinnedItem
	}
	if node.HasChildren() {
		return nil, nil, shared.ErrInvalidState
	}
	child := &Node{
		ID:           uuid.NewString(),
		Label:        node.Label,
		Amounts:      node.Amounts,
		LinkedUnitID: node.LinkedUnitID,
	}
	sub := newSubtotal(node.Label)
	node.LinkedUnitID = ""
	node.ChildOrder = []string{child.ID, sub.ID}
	node.Children = map[string]*Node{child.ID: child, sub.ID: sub}
	cp.refreshRollups(path)
	return cp, child, nil
}

// RenameNode relabels the row at path. Anchors and subtotal rows keep
// their labels. Renaming a header also refreshes its subtotal child.
func (s *Section) RenameNode(path []string, label string) (*Section, error) {
	if len(path) == 0 {
		return nil, ErrInvalidPath
	}
	if label == "" {
		return nil, shared.ErrInvalidInput
	}
	cp, _, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, err
	}
	if node.Pinned {
		return nil, ErrPinnedItem
	}
	if node.IsSubtotal {
		return nil, ErrSubtotalReadOnly
	}
	node.Label = label
	for _, id := range node.ChildOrder {
		if c := node.Children[id]; c != nil && c.IsSubtotal {
			sub := c.shallowCopy()
			sub.Label = label + " Total"
			node.Children[id] = sub
		}
	}
	return cp, nil
}

// DeleteNode removes the node at path together with its whole subtree and
// returns the detached subtree so the caller can release any linked unit
// records. A header whose last real child is deleted collapses back to an
// ordinary zero-valued leaf.
func (s *Section) DeleteNode(path []string) (*Section, *Node, error) {
	if len(path) == 0 {
		return nil, nil, ErrInvalidPath
	}
	cp, holder, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, nil, err
	}
	if node.Pinned {
		return nil, nil, ErrPinnedItem
	}
	id := path[len(path)-1]
	i := holder.indexOf(id)
	if i < 0 {
		return nil, nil, ErrPathNotFound
	}
	*holder.order = append((*holder.order)[:i], (*holder.order)[i+1:]...)
	delete(holder.items, id)

	if len(path) > 1 {
		parent := cp.Get(path[:len(path)-1]...)
		if parent.NonSubtotalChildCount() == 0 {
			parent.ChildOrder = nil
			parent.Children = nil
			parent.Amounts = Amounts{}
		}
	}
	cp.refreshRollups(path[:len(path)-1])
	return cp, node, nil
}

// CloneNode duplicates the subtree at path count times, inserting the
// copies directly after the original. Copies get fresh IDs, a " (Copy)"
// label suffix (disambiguated further on collision), and no unit links.
func (s *Section) CloneNode(path []string, count int) (*Section, []*Node, error) {
	if count < 1 || count > MaxCloneCount {
		return nil, nil, ErrInvalidCloneCount
	}
	if len(path) == 0 {
		return nil, nil, ErrInvalidPath
	}
	cp, holder, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, nil, err
	}
	if node.IsSubtotal || (node.Pinned && !node.AllowClone) {
		return nil, nil, ErrPinnedItem
	}
	if len(path) > 1 {
		parent := cp.Get(path[:len(path)-1]...)
		if parent.NonSubtotalChildCount()+count > MaxChildren {
			return nil, nil, ErrMaxChildren
		}
	}
	taken := labelSet(holder)
	id := path[len(path)-1]
	pos := holder.indexOf(id)
	clones := make([]*Node, 0, count)
	for k := 0; k < count; k++ {
		name := disambiguate(taken, node.Label+" (Copy)")
		taken[name] = struct{}{}
		clone := node.cloneSubtree(name)
		at := pos + 1 + k
		*holder.order = append(*holder.order, "")
		copy((*holder.order)[at+1:], (*holder.order)[at:])
		(*holder.order)[at] = clone.ID
		holder.items[clone.ID] = clone
		clones = append(clones, clone)
	}
	cp.refreshRollups(path[:len(path)-1])
	return cp, clones, nil
}

// Reorder replaces the row order of a scope (the root for an empty path,
// otherwise the children of the node at path). The new order must be a
// permutation of the current one and must keep pinned rows in their
// relative positions: Gross Scheduled Rent stays first at the income root
// and a subtotal row stays last among its siblings. Free rows may cross
// the Net Rental Income boundary; their stored signs are left alone until
// they are next edited, but the Net Rental Income rollup tracks the new
// membership right away.
func (s *Section) Reorder(path []string, order []string) (*Section, error) {
	cp, holder, node, err := s.cloneSpine(path)
	if err != nil {
		return nil, err
	}
	if node != nil {
		if !node.HasChildren() {
			return nil, ErrInvalidPath
		}
		holder = node.childContainer()
	}
	if len(order) != len(*holder.order) {
		return nil, shared.ErrInvalidInput
	}
	seen := make(map[string]struct{}, len(order))
	for _, id := range order {
		if _, ok := holder.items[id]; !ok {
			return nil, ErrPathNotFound
		}
		if _, dup := seen[id]; dup {
			return nil, shared.ErrInvalidInput
		}
		seen[id] = struct{}{}
	}
	var oldPinned, newPinned []string
	for _, id := range *holder.order {
		if n := holder.items[id]; n != nil && n.Pinned {
			oldPinned = append(oldPinned, id)
		}
	}
	for _, id := range order {
		if n := holder.items[id]; n != nil && n.Pinned {
			newPinned = append(newPinned, id)
		}
	}
	if len(oldPinned) != len(newPinned) {
		return nil, ErrPinnedItem
	}
	for i := range oldPinned {
		if oldPinned[i] != newPinned[i] {
			return nil, ErrPinnedItem
		}
	}
	if len(path) == 0 && cp.Key == SectionIncome {
		if _, ok := holder.items[GrossScheduledRentID]; ok && order[0] != GrossScheduledRentID {
			return nil, ErrPinnedItem
		}
	}
	if node != nil {
		last := order[len(order)-1]
		if n := holder.items[last]; n == nil || !n.IsSubtotal {
			for _, id := range order {
				if c := holder.items[id]; c != nil && c.IsSubtotal {
					return nil, ErrPinnedItem
				}
			}
		}
	}
	fresh := make([]string, len(order))
	copy(fresh, order)
	*holder.order = fresh
	cp.refreshRollups(path)
	return cp, nil
}
