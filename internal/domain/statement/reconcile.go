package statement

import "github.com/shopspring/decimal"

// Rounding precision for reconciled values. Rates carry four places, money
// and per-area/per-unit figures carry two.
const (
	moneyPlaces int32 = 2
	ratePlaces  int32 = 4
)

var twelve = decimal.NewFromInt(12)

// Metrics supplies the building-level divisors used to derive per-square-foot
// and per-unit figures from gross amounts. Callers pass it on every
// reconciliation; the engine never fetches it.
type Metrics struct {
	GrossBuildingArea decimal.Decimal
	UnitCount         decimal.Decimal
}

// HasArea reports whether the building area divisor is usable
func (m Metrics) HasArea() bool {
	return m.GrossBuildingArea.IsPositive()
}

// HasUnits reports whether the unit count divisor is usable
func (m Metrics) HasUnits() bool {
	return m.UnitCount.IsPositive()
}

// Reconcile applies an edit of one field and derives the other seven,
// returning a new Amounts value; the input is never modified.
//
// The edited value is first normalized to its monthly slot (annual edits
// divide by 12, except rates which mirror 1:1). Gross edits cascade into
// psf and punit through the Metrics divisors; psf or punit edits derive
// gross first and then the other per-x family. A divisor that is zero or
// negative silently skips its derivation, preserving whatever the field
// held before; loaded data is never destroyed by missing building metrics.
//
// A negative rate input is coerced to its absolute value. An unset input
// (NullDecimal with Valid=false, the cleared-field sentinel) is treated as
// zero. All outputs are rounded half away from zero to two places, four
// for rates. Reconcile is a pure function and a fixed point: repeating the
// same edit yields an identical result.
func Reconcile(a Amounts, field Field, input decimal.NullDecimal, m Metrics) Amounts {
	if !field.IsValid() {
		return a
	}

	v := decimal.Zero
	if input.Valid {
		v = input.Decimal
	}
	if field.IsRate() {
		v = v.Abs()
	}

	// Normalize the edit to the monthly slot.
	monthly := v
	if field.IsAnnual() && !field.IsRate() {
		monthly = v.Div(twelve)
	}

	switch field.Kind() {
	case KindRate:
		rate := monthly.Round(ratePlaces)
		a.RateMonthly = rate
		a.RateAnnual = rate
		return a

	case KindGross:
		a = setGross(a, monthly)
		a = derivePerArea(a, m)
		a = derivePerUnit(a, m)
		return a

	case KindPSF:
		a.PSFMonthly = monthly.Round(moneyPlaces)
		a.PSFAnnual = a.PSFMonthly.Mul(twelve).Round(moneyPlaces)
		if !m.HasArea() {
			return a
		}
		a = setGross(a, a.PSFMonthly.Mul(m.GrossBuildingArea))
		a = derivePerUnit(a, m)
		return a

	default: // KindPUnit
		a.PUnitMonthly = monthly.Round(moneyPlaces)
		a.PUnitAnnual = a.PUnitMonthly.Mul(twelve).Round(moneyPlaces)
		if !m.HasUnits() {
			return a
		}
		a = setGross(a, a.PUnitMonthly.Mul(m.UnitCount))
		a = derivePerArea(a, m)
		return a
	}
}

// setGross writes the gross monthly value and its annual pair
func setGross(a Amounts, monthly decimal.Decimal) Amounts {
	a.GrossMonthly = monthly.Round(moneyPlaces)
	a.GrossAnnual = a.GrossMonthly.Mul(twelve).Round(moneyPlaces)
	return a
}

// derivePerArea recomputes psf from gross if the area divisor is usable
func derivePerArea(a Amounts, m Metrics) Amounts {
	if !m.HasArea() {
		return a
	}
	a.PSFMonthly = a.GrossMonthly.Div(m.GrossBuildingArea).Round(moneyPlaces)
	a.PSFAnnual = a.PSFMonthly.Mul(twelve).Round(moneyPlaces)
	return a
}

// derivePerUnit recomputes punit from gross if the unit divisor is usable
func derivePerUnit(a Amounts, m Metrics) Amounts {
	if !m.HasUnits() {
		return a
	}
	a.PUnitMonthly = a.GrossMonthly.Div(m.UnitCount).Round(moneyPlaces)
	a.PUnitAnnual = a.PUnitMonthly.Mul(twelve).Round(moneyPlaces)
	return a
}
