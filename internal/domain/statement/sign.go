package statement

import "github.com/shopspring/decimal"

// SignRule says how the sign of an edited money value is constrained by
// the row's position in the income section.
type SignRule int

const (
	// SignFree leaves the entered sign untouched
	SignFree SignRule = iota
	// SignForceNegative coerces the value to a deduction
	SignForceNegative
	// SignForcePositive coerces the value to income
	SignForcePositive
)

// Classify returns the sign rule for the row whose path starts at rootID.
// Only the income section constrains signs: rows strictly between Gross
// Scheduled Rent and Net Rental Income are deductions, rows strictly after
// Net Rental Income are other income, everything else is free. Nested rows
// inherit the rule of their root-level ancestor. Missing anchors disable
// the policy rather than guessing.
func (s *Section) Classify(rootID string) SignRule {
	if s.Key != SectionIncome {
		return SignFree
	}
	gsr, nri := -1, -1
	target := -1
	for i, id := range s.Order {
		switch id {
		case GrossScheduledRentID:
			gsr = i
		case NetRentalIncomeID:
			nri = i
		}
		if id == rootID {
			target = i
		}
	}
	if gsr < 0 || nri < 0 || target < 0 {
		return SignFree
	}
	if target > gsr && target < nri {
		return SignForceNegative
	}
	if target > nri {
		return SignForcePositive
	}
	return SignFree
}

// Apply coerces v per the rule. Rates are excluded upstream; this operates
// on monetary values only.
func (r SignRule) Apply(v decimal.Decimal) decimal.Decimal {
	switch r {
	case SignForceNegative:
		return v.Abs().Neg()
	case SignForcePositive:
		return v.Abs()
	default:
		return v
	}
}
