package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	s := NewIncomeSection()
	s, vacancy, err := s.AddRootItem("Vacancy", NetRentalIncomeID)
	require.NoError(t, err)
	s, parking, err := s.AddRootItem("Parking", "")
	require.NoError(t, err)

	t.Run("rows between the anchors are deductions", func(t *testing.T) {
		assert.Equal(t, SignForceNegative, s.Classify(vacancy.ID))
	})

	t.Run("rows after net rental income are other income", func(t *testing.T) {
		assert.Equal(t, SignForcePositive, s.Classify(parking.ID))
	})

	t.Run("the anchors themselves are free", func(t *testing.T) {
		assert.Equal(t, SignFree, s.Classify(GrossScheduledRentID))
		assert.Equal(t, SignFree, s.Classify(NetRentalIncomeID))
	})

	t.Run("unknown rows are free", func(t *testing.T) {
		assert.Equal(t, SignFree, s.Classify("nope"))
	})

	t.Run("non-income sections never constrain", func(t *testing.T) {
		e := NewSection(SectionOperatingExpenses)
		e, row, err := e.AddRootItem("Taxes", "")
		require.NoError(t, err)
		assert.Equal(t, SignFree, e.Classify(row.ID))
	})

	t.Run("a deleted anchor disables the policy", func(t *testing.T) {
		broken := NewSection(SectionIncome)
		broken, row, err := broken.AddRootItem("Orphan", "")
		require.NoError(t, err)
		assert.Equal(t, SignFree, broken.Classify(row.ID))
	})
}

func TestSignRuleApply(t *testing.T) {
	t.Run("force negative flips positives and keeps negatives", func(t *testing.T) {
		assert.True(t, dec("-50").Equal(SignForceNegative.Apply(dec("50"))))
		assert.True(t, dec("-50").Equal(SignForceNegative.Apply(dec("-50"))))
	})

	t.Run("force positive flips negatives and keeps positives", func(t *testing.T) {
		assert.True(t, dec("50").Equal(SignForcePositive.Apply(dec("-50"))))
		assert.True(t, dec("50").Equal(SignForcePositive.Apply(dec("50"))))
	})

	t.Run("free passes through", func(t *testing.T) {
		assert.True(t, dec("-50").Equal(SignFree.Apply(dec("-50"))))
	})
}

func TestEditEnforcesSignAtEditTimeOnly(t *testing.T) {
	s := NewIncomeSection()
	s, vacancy, err := s.AddRootItem("Vacancy", NetRentalIncomeID)
	require.NoError(t, err)
	s, err = s.Edit([]string{vacancy.ID}, FieldGrossMonthly, in("200"), testMetrics())
	require.NoError(t, err)
	assertField(t, "-200", s.Get(vacancy.ID).Amounts, FieldGrossMonthly)

	// Move the row below Net Rental Income. Stored values keep their old
	// sign until the row is edited again.
	order := []string{GrossScheduledRentID, NetRentalIncomeID, vacancy.ID}
	s, err = s.Reorder(nil, order)
	require.NoError(t, err)
	assertField(t, "-200", s.Get(vacancy.ID).Amounts, FieldGrossMonthly)

	s, err = s.Edit([]string{vacancy.ID}, FieldGrossMonthly, in("-200"), testMetrics())
	require.NoError(t, err)
	assertField(t, "200", s.Get(vacancy.ID).Amounts, FieldGrossMonthly)
}

func TestEditRateExemptFromSignPolicy(t *testing.T) {
	s := NewIncomeSection()
	s, vacancy, err := s.AddRootItem("Vacancy", NetRentalIncomeID)
	require.NoError(t, err)

	s, err = s.Edit([]string{vacancy.ID}, FieldRateMonthly, in("0.05"), testMetrics())
	require.NoError(t, err)
	assertField(t, "0.05", s.Get(vacancy.ID).Amounts, FieldRateMonthly)
}

func TestEditNestedRowInheritsRootBand(t *testing.T) {
	s := NewIncomeSection()
	s, header, err := s.AddRootItem("Concessions", NetRentalIncomeID)
	require.NoError(t, err)
	s, kids, err := s.AddChildren([]string{header.ID}, []string{"Move-in special"})
	require.NoError(t, err)

	s, err = s.Edit([]string{header.ID, kids[0].ID}, FieldGrossMonthly, in("75"), testMetrics())
	require.NoError(t, err)
	assertField(t, "-75", s.Get(header.ID, kids[0].ID).Amounts, FieldGrossMonthly)
	assertField(t, "-75", s.Get(header.ID).Amounts, FieldGrossMonthly)
}
