package statement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func in(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func cleared() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func assertField(t *testing.T, want string, a Amounts, f Field) {
	t.Helper()
	assert.True(t, dec(want).Equal(a.Get(f)),
		"field %s: want %s, got %s", f, want, a.Get(f))
}

func testMetrics() Metrics {
	return Metrics{GrossBuildingArea: dec("1000"), UnitCount: dec("10")}
}

func TestReconcile(t *testing.T) {
	t.Run("gross monthly edit derives all seven siblings", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldGrossMonthly, in("1000"), testMetrics())

		assertField(t, "1000", a, FieldGrossMonthly)
		assertField(t, "12000", a, FieldGrossAnnual)
		assertField(t, "1", a, FieldPSFMonthly)
		assertField(t, "12", a, FieldPSFAnnual)
		assertField(t, "100", a, FieldPUnitMonthly)
		assertField(t, "1200", a, FieldPUnitAnnual)
		assert.True(t, a.RateMonthly.IsZero())
		assert.True(t, a.RateAnnual.IsZero())
	})

	t.Run("annual edit normalizes to monthly", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldGrossAnnual, in("12000"), testMetrics())

		assertField(t, "1000", a, FieldGrossMonthly)
		assertField(t, "12000", a, FieldGrossAnnual)
	})

	t.Run("annual edit that does not divide evenly re-derives the annual", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldGrossAnnual, in("100"), Metrics{})

		assertField(t, "8.33", a, FieldGrossMonthly)
		assertField(t, "99.96", a, FieldGrossAnnual)
	})

	t.Run("monthly times twelve equals annual for every money family", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldGrossMonthly, in("123.45"), testMetrics())

		for _, pair := range [][2]Field{
			{FieldGrossMonthly, FieldGrossAnnual},
			{FieldPSFMonthly, FieldPSFAnnual},
			{FieldPUnitMonthly, FieldPUnitAnnual},
		} {
			monthly, annual := a.Get(pair[0]), a.Get(pair[1])
			assert.True(t, monthly.Mul(dec("12")).Round(2).Equal(annual),
				"%s*12 != %s", pair[0], pair[1])
		}
	})

	t.Run("rate mirrors one to one between slots", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldRateAnnual, in("0.05"), testMetrics())

		assertField(t, "0.05", a, FieldRateMonthly)
		assertField(t, "0.05", a, FieldRateAnnual)
		assert.True(t, a.GrossMonthly.IsZero(), "rate edits never touch gross")
	})

	t.Run("negative rate input is coerced to absolute", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldRateMonthly, in("-0.035"), testMetrics())

		assertField(t, "0.035", a, FieldRateMonthly)
		assertField(t, "0.035", a, FieldRateAnnual)
	})

	t.Run("rate rounds to four places", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldRateMonthly, in("0.12345"), testMetrics())

		assertField(t, "0.1235", a, FieldRateMonthly)
	})

	t.Run("psf edit derives gross and punit through the area", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldPSFMonthly, in("2.50"), testMetrics())

		assertField(t, "2.50", a, FieldPSFMonthly)
		assertField(t, "30", a, FieldPSFAnnual)
		assertField(t, "2500", a, FieldGrossMonthly)
		assertField(t, "30000", a, FieldGrossAnnual)
		assertField(t, "250", a, FieldPUnitMonthly)
		assertField(t, "3000", a, FieldPUnitAnnual)
	})

	t.Run("punit edit derives gross and psf through the unit count", func(t *testing.T) {
		a := Reconcile(Amounts{}, FieldPUnitMonthly, in("150"), testMetrics())

		assertField(t, "150", a, FieldPUnitMonthly)
		assertField(t, "1500", a, FieldGrossMonthly)
		assertField(t, "1.50", a, FieldPSFMonthly)
	})

	t.Run("missing area skips psf but keeps punit derivation", func(t *testing.T) {
		m := Metrics{UnitCount: dec("10")}
		prior := Amounts{PSFMonthly: dec("9.99"), PSFAnnual: dec("119.88")}
		a := Reconcile(prior, FieldGrossMonthly, in("1000"), m)

		assertField(t, "1000", a, FieldGrossMonthly)
		assertField(t, "100", a, FieldPUnitMonthly)
		assertField(t, "9.99", a, FieldPSFMonthly)
		assertField(t, "119.88", a, FieldPSFAnnual)
	})

	t.Run("psf edit with unusable area leaves gross and punit alone", func(t *testing.T) {
		prior := Amounts{GrossMonthly: dec("500"), GrossAnnual: dec("6000")}
		a := Reconcile(prior, FieldPSFMonthly, in("3"), Metrics{UnitCount: dec("10")})

		assertField(t, "3", a, FieldPSFMonthly)
		assertField(t, "36", a, FieldPSFAnnual)
		assertField(t, "500", a, FieldGrossMonthly)
		assert.True(t, a.PUnitMonthly.IsZero())
	})

	t.Run("negative metrics count as unusable", func(t *testing.T) {
		m := Metrics{GrossBuildingArea: dec("-5"), UnitCount: dec("-1")}
		a := Reconcile(Amounts{}, FieldGrossMonthly, in("1000"), m)

		assert.True(t, a.PSFMonthly.IsZero())
		assert.True(t, a.PUnitMonthly.IsZero())
	})

	t.Run("cleared input zeroes the edited family", func(t *testing.T) {
		prior := Reconcile(Amounts{}, FieldGrossMonthly, in("1000"), testMetrics())
		a := Reconcile(prior, FieldGrossMonthly, cleared(), testMetrics())

		assert.True(t, a.GrossMonthly.IsZero())
		assert.True(t, a.GrossAnnual.IsZero())
		assert.True(t, a.PSFMonthly.IsZero())
		assert.True(t, a.PUnitMonthly.IsZero())
	})

	t.Run("repeating an edit is a fixed point", func(t *testing.T) {
		m := testMetrics()
		once := Reconcile(Amounts{}, FieldGrossAnnual, in("100"), m)
		twice := Reconcile(once, FieldGrossAnnual, in("100"), m)

		assert.True(t, once.Equal(twice))
	})

	t.Run("gross to psf and back stays within a cent", func(t *testing.T) {
		m := Metrics{GrossBuildingArea: dec("937"), UnitCount: dec("7")}
		first := Reconcile(Amounts{}, FieldGrossMonthly, in("1234.56"), m)
		back := Reconcile(first, FieldPSFMonthly,
			decimal.NullDecimal{Decimal: first.PSFMonthly, Valid: true}, m)

		drift := back.GrossMonthly.Sub(first.GrossMonthly).Abs()
		require.True(t, drift.LessThanOrEqual(m.GrossBuildingArea.Mul(dec("0.005"))),
			"gross drifted %s after round-trip", drift)
	})

	t.Run("unknown field is a no-op", func(t *testing.T) {
		prior := Reconcile(Amounts{}, FieldGrossMonthly, in("1000"), testMetrics())
		a := Reconcile(prior, Field("bogus"), in("42"), testMetrics())

		assert.True(t, prior.Equal(a))
	})
}
