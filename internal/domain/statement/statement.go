package statement

import (
	"github.com/google/uuid"

	"github.com/proforma/backend/internal/domain/shared"
)

// Statement is the proforma income statement for one property: three
// independently ordered sections plus the property metrics every per-area
// and per-unit derivation runs against. One statement per property.
type Statement struct {
	shared.BaseEntity
	PropertyID        uuid.UUID `json:"propertyId"`
	Metrics           Metrics   `json:"metrics"`
	Income            *Section  `json:"income"`
	OperatingExpenses *Section  `json:"operatingExpenses"`
	CapitalExpenses   *Section  `json:"capitalExpenses"`
}

// NewStatement creates the empty statement for a property, with the income
// anchors seeded and the other sections blank.
func NewStatement(propertyID uuid.UUID, m Metrics) *Statement {
	return &Statement{
		BaseEntity:        shared.NewBaseEntity(),
		PropertyID:        propertyID,
		Metrics:           m,
		Income:            NewIncomeSection(),
		OperatingExpenses: NewSection(SectionOperatingExpenses),
		CapitalExpenses:   NewSection(SectionCapitalExpenses),
	}
}

// Section returns the named section, or nil for an unknown key
func (st *Statement) Section(key SectionKey) *Section {
	switch key {
	case SectionIncome:
		return st.Income
	case SectionOperatingExpenses:
		return st.OperatingExpenses
	case SectionCapitalExpenses:
		return st.CapitalExpenses
	default:
		return nil
	}
}

// ReplaceSection swaps in an updated section returned by a mutation
func (st *Statement) ReplaceSection(sec *Section) {
	switch sec.Key {
	case SectionIncome:
		st.Income = sec
	case SectionOperatingExpenses:
		st.OperatingExpenses = sec
	case SectionCapitalExpenses:
		st.CapitalExpenses = sec
	}
	st.Touch()
}

// subMoney subtracts b from a field-wise, leaving the rate fields of a
// untouched. Rate columns do not total meaningfully.
func subMoney(a, b Amounts) Amounts {
	for _, f := range AllFields {
		if f.IsRate() {
			continue
		}
		a = a.With(f, a.Get(f).Sub(b.Get(f)))
	}
	return a
}

// NetOperatingIncome is total income less total operating expenses
func (st *Statement) NetOperatingIncome() Amounts {
	return subMoney(st.Income.Total(), st.OperatingExpenses.Total())
}

// CashFlow is net operating income less total capital expenses
func (st *Statement) CashFlow() Amounts {
	return subMoney(st.NetOperatingIncome(), st.CapitalExpenses.Total())
}
