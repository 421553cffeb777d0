// Package statement implements the income statement reconciliation engine:
// a hierarchical ledger of line items whose eight numeric fields are kept
// mutually consistent through pure, tree-in/tree-out operations.
package statement

import "github.com/shopspring/decimal"

// FieldKind groups the eight amount fields into their four derivation families.
type FieldKind string

const (
	KindGross FieldKind = "gross"
	KindRate  FieldKind = "rate"
	KindPSF   FieldKind = "psf"
	KindPUnit FieldKind = "punit"
)

// Field identifies one of the eight amount fields of a line item.
type Field string

const (
	FieldGrossMonthly Field = "grossMonthly"
	FieldGrossAnnual  Field = "grossAnnual"
	FieldRateMonthly  Field = "rateMonthly"
	FieldRateAnnual   Field = "rateAnnual"
	FieldPSFMonthly   Field = "psfMonthly"
	FieldPSFAnnual    Field = "psfAnnual"
	FieldPUnitMonthly Field = "punitMonthly"
	FieldPUnitAnnual  Field = "punitAnnual"
)

// AllFields lists the eight amount fields in canonical order.
var AllFields = []Field{
	FieldGrossMonthly, FieldGrossAnnual,
	FieldRateMonthly, FieldRateAnnual,
	FieldPSFMonthly, FieldPSFAnnual,
	FieldPUnitMonthly, FieldPUnitAnnual,
}

// IsValid checks whether f names a known amount field
func (f Field) IsValid() bool {
	switch f {
	case FieldGrossMonthly, FieldGrossAnnual, FieldRateMonthly, FieldRateAnnual,
		FieldPSFMonthly, FieldPSFAnnual, FieldPUnitMonthly, FieldPUnitAnnual:
		return true
	}
	return false
}

// Kind returns the derivation family f belongs to
func (f Field) Kind() FieldKind {
	switch f {
	case FieldGrossMonthly, FieldGrossAnnual:
		return KindGross
	case FieldRateMonthly, FieldRateAnnual:
		return KindRate
	case FieldPSFMonthly, FieldPSFAnnual:
		return KindPSF
	default:
		return KindPUnit
	}
}

// IsRate reports whether f is one of the two rate fields. Rate fields are
// never time-scaled and are exempt from sign enforcement.
func (f Field) IsRate() bool {
	return f.Kind() == KindRate
}

// IsAnnual reports whether f is an annual-slot field
func (f Field) IsAnnual() bool {
	switch f {
	case FieldGrossAnnual, FieldRateAnnual, FieldPSFAnnual, FieldPUnitAnnual:
		return true
	}
	return false
}

// String returns the string representation
func (f Field) String() string {
	return string(f)
}

// Amounts carries the eight mutually-derived numeric fields of a line item.
// The invariant annual = monthly * 12 holds for gross/psf/punit; rate mirrors
// 1:1 between its monthly and annual slots. The zero value is all zeros.
type Amounts struct {
	GrossMonthly decimal.Decimal `json:"grossMonthly"`
	GrossAnnual  decimal.Decimal `json:"grossAnnual"`
	RateMonthly  decimal.Decimal `json:"rateMonthly"`
	RateAnnual   decimal.Decimal `json:"rateAnnual"`
	PSFMonthly   decimal.Decimal `json:"psfMonthly"`
	PSFAnnual    decimal.Decimal `json:"psfAnnual"`
	PUnitMonthly decimal.Decimal `json:"punitMonthly"`
	PUnitAnnual  decimal.Decimal `json:"punitAnnual"`
}

// Get returns the value stored in field f
func (a Amounts) Get(f Field) decimal.Decimal {
	switch f {
	case FieldGrossMonthly:
		return a.GrossMonthly
	case FieldGrossAnnual:
		return a.GrossAnnual
	case FieldRateMonthly:
		return a.RateMonthly
	case FieldRateAnnual:
		return a.RateAnnual
	case FieldPSFMonthly:
		return a.PSFMonthly
	case FieldPSFAnnual:
		return a.PSFAnnual
	case FieldPUnitMonthly:
		return a.PUnitMonthly
	case FieldPUnitAnnual:
		return a.PUnitAnnual
	}
	return decimal.Zero
}

// With returns a copy of a with field f set to v
func (a Amounts) With(f Field, v decimal.Decimal) Amounts {
	switch f {
	case FieldGrossMonthly:
		a.GrossMonthly = v
	case FieldGrossAnnual:
		a.GrossAnnual = v
	case FieldRateMonthly:
		a.RateMonthly = v
	case FieldRateAnnual:
		a.RateAnnual = v
	case FieldPSFMonthly:
		a.PSFMonthly = v
	case FieldPSFAnnual:
		a.PSFAnnual = v
	case FieldPUnitMonthly:
		a.PUnitMonthly = v
	case FieldPUnitAnnual:
		a.PUnitAnnual = v
	}
	return a
}

// Add returns the per-field sum of a and b. Each of the eight fields is
// accumulated independently; psf/punit sums are deliberately not re-derived
// from the summed gross.
func (a Amounts) Add(b Amounts) Amounts {
	return Amounts{
		GrossMonthly: a.GrossMonthly.Add(b.GrossMonthly),
		GrossAnnual:  a.GrossAnnual.Add(b.GrossAnnual),
		RateMonthly:  a.RateMonthly.Add(b.RateMonthly),
		RateAnnual:   a.RateAnnual.Add(b.RateAnnual),
		PSFMonthly:   a.PSFMonthly.Add(b.PSFMonthly),
		PSFAnnual:    a.PSFAnnual.Add(b.PSFAnnual),
		PUnitMonthly: a.PUnitMonthly.Add(b.PUnitMonthly),
		PUnitAnnual:  a.PUnitAnnual.Add(b.PUnitAnnual),
	}
}

// IsZero reports whether all eight fields are zero
func (a Amounts) IsZero() bool {
	for _, f := range AllFields {
		if !a.Get(f).IsZero() {
			return false
		}
	}
	return true
}

// Equal reports whether a and b hold the same value in every field
func (a Amounts) Equal(b Amounts) bool {
	for _, f := range AllFields {
		if !a.Get(f).Equal(b.Get(f)) {
			return false
		}
	}
	return true
}
