package statement

// Aggregation adds stored field values as-is. Per-area and per-unit sums
// are sums of the children's own per-x figures, never a re-derivation from
// the summed gross; a header's $/SF is only meaningful as the total of its
// members' $/SF lines.

// ChildrenSum totals the amounts of n's children, skipping subtotal rows
// so computed rollups never feed back into their own inputs.
func (n *Node) ChildrenSum() Amounts {
	var total Amounts
	for _, id := range n.ChildOrder {
		c := n.Children[id]
		if c == nil || c.IsSubtotal {
			continue
		}
		total = total.Add(c.Amounts)
	}
	return total
}

// Total sums every root row of the section that is not a subtotal
func (s *Section) Total() Amounts {
	var total Amounts
	for _, id := range s.Order {
		n := s.Items[id]
		if n == nil || n.IsSubtotal {
			continue
		}
		total = total.Add(n.Amounts)
	}
	return total
}

// SumRange sums the root rows from fromID (inclusive) up to toID
// (exclusive), skipping subtotals. If either bound is missing or the range
// is empty it returns zeros instead of failing; a statement with a deleted
// anchor degrades to an empty rollup, not an error.
func (s *Section) SumRange(fromID, toID string) Amounts {
	from, to := -1, -1
	for i, id := range s.Order {
		switch id {
		case fromID:
			from = i
		case toID:
			to = i
		}
	}
	var total Amounts
	if from < 0 || to < 0 || from >= to {
		return total
	}
	for _, id := range s.Order[from:to] {
		n := s.Items[id]
		if n == nil || n.IsSubtotal {
			continue
		}
		total = total.Add(n.Amounts)
	}
	return total
}

// NetRentalIncome computes the rollup shown on the pinned Net Rental
// Income row: Gross Scheduled Rent plus every deduction row above the
// subtotal.
func (s *Section) NetRentalIncome() Amounts {
	return s.SumRange(GrossScheduledRentID, NetRentalIncomeID)
}
