package statement

// SectionKey identifies a top-level section of the income statement
type SectionKey string

// The three statement sections
const (
	SectionIncome            SectionKey = "income"
	SectionOperatingExpenses SectionKey = "operating_expenses"
	SectionCapitalExpenses   SectionKey = "capital_expenses"
)

// Well-known row IDs seeded into the income section. They anchor the sign
// policy band and the net rental income rollup.
const (
	GrossScheduledRentID = "gross-scheduled-rent"
	NetRentalIncomeID    = "net-rental-income"
)

// Section is one ordered tree of statement rows. Root ordering lives in
// Order; Items maps root IDs to their nodes. All mutating operations are
// copy-on-write: they return a new Section whose untouched subtrees are
// shared with the receiver, and a changed node is always a new pointer.
type Section struct {
	Key   SectionKey       `json:"key"`
	Order []string         `json:"order"`
	Items map[string]*Node `json:"items"`
}

// NewSection creates an empty section
func NewSection(key SectionKey) *Section {
	return &Section{
		Key:   key,
		Order: []string{},
		Items: map[string]*Node{},
	}
}

// NewIncomeSection creates the income section with its two pinned anchors:
// Gross Scheduled Rent at the top and the computed Net Rental Income
// subtotal below it. Rows added between them are deductions; rows added
// after Net Rental Income are other income.
func NewIncomeSection() *Section {
	s := NewSection(SectionIncome)
	gsr := &Node{
		ID:     GrossScheduledRentID,
		Label:  "Gross Scheduled Rent",
		Pinned: true,
	}
	nri := &Node{
		ID:         NetRentalIncomeID,
		Label:      "Net Rental Income",
		Pinned:     true,
		IsSubtotal: true,
	}
	s.Order = append(s.Order, gsr.ID, nri.ID)
	s.Items[gsr.ID] = gsr
	s.Items[nri.ID] = nri
	return s
}

// validatePath accepts an empty path (root scope). An empty segment or a
// repeated segment is malformed regardless of tree contents.
func validatePath(path []string) error {
	seen := make(map[string]struct{}, len(path))
	for _, seg := range path {
		if seg == "" {
			return ErrInvalidPath
		}
		if _, dup := seen[seg]; dup {
			return ErrInvalidPath
		}
		seen[seg] = struct{}{}
	}
	return nil
}

// Get resolves a path of node IDs from the root. It returns nil when any
// segment is missing; it never panics on garbage input.
func (s *Section) Get(path ...string) *Node {
	if len(path) == 0 {
		return nil
	}
	node, ok := s.Items[path[0]]
	if !ok {
		return nil
	}
	for _, seg := range path[1:] {
		if node.Children == nil {
			return nil
		}
		node, ok = node.Children[seg]
		if !ok {
			return nil
		}
	}
	return node
}

// container is a uniform view over "the place a node list lives": either
// the section root or a parent node's children. cloneSpine hands one back
// so mutations can splice order and items without caring about depth.
type container struct {
	order *[]string
	items map[string]*Node
}

func (c container) indexOf(id string) int {
	for i, v := range *c.order {
		if v == id {
			return i
		}
	}
	return -1
}

// childContainer views the node's own children as a container. Children
// may be nil for a leaf; callers that insert must initialize it first.
func (n *Node) childContainer() container {
	return container{order: &n.ChildOrder, items: n.Children}
}

// cloneSpine copies the section and every node along path, sharing all
// off-path subtrees. It returns the new section, the container that holds
// the last path element among its siblings, and the cloned node at the end
// of the path (nil for an empty path, where the container is the root
// itself). Mutations work on the returned copies; the receiver is never
// modified.
func (s *Section) cloneSpine(path []string) (*Section, container, *Node, error) {
	if err := validatePath(path); err != nil {
		return nil, container{}, nil, err
	}
	cp := &Section{Key: s.Key}
	cp.Order = make([]string, len(s.Order))
	copy(cp.Order, s.Order)
	cp.Items = make(map[string]*Node, len(s.Items))
	for id, n := range s.Items {
		cp.Items[id] = n
	}

	holder := container{order: &cp.Order, items: cp.Items}
	var node *Node
	for i, seg := range path {
		orig, ok := holder.items[seg]
		if !ok {
			return nil, container{}, nil, ErrPathNotFound
		}
		node = orig.shallowCopy()
		holder.items[seg] = node
		if i < len(path)-1 {
			holder = node.childContainer()
		}
	}
	return cp, holder, node, nil
}

// Set replaces the node at path with node, returning the updated section.
// The target must already exist; Set never creates structure.
func (s *Section) Set(path []string, node *Node) (*Section, error) {
	if len(path) == 0 {
		return nil, ErrInvalidPath
	}
	cp, holder, _, err := s.cloneSpine(path)
	if err != nil {
		return nil, err
	}
	holder.items[path[len(path)-1]] = node
	return cp, nil
}
