// Package units holds the rentable unit ledger: the flat list of units a
// property contains, each carrying its own rent roll entry. Income
// statement rows may link to a unit; the link is a weak reference owned by
// the statement, and the ledger stays consistent through explicit sync
// calls rather than shared state.
package units

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/shared"
)

const maxUnitNameLength = 100

// Kind tells a rentable unit apart from a header row that groups units in
// the rent roll.
type Kind string

const (
	KindUnit   Kind = "unit"
	KindHeader Kind = "header"
)

// Unit is one rentable unit of a property
type Unit struct {
	shared.TenantEntity
	PropertyID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Kind        Kind            `gorm:"type:varchar(10);not null;default:'unit'"`
	MonthlyRent decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SquareFeet  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Bedrooms    int             `gorm:"not null;default:0"`
	Bathrooms   decimal.Decimal `gorm:"type:decimal(4,1);not null;default:0"`
	Occupied    bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Unit) TableName() string {
	return "units"
}

// NewUnit creates a unit for a property
func NewUnit(tenantID, propertyID uuid.UUID, name string, monthlyRent decimal.Decimal) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxUnitNameLength {
		return nil, shared.ErrInvalidInput
	}
	return &Unit{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PropertyID:   propertyID,
		Name:         name,
		Kind:         KindUnit,
		MonthlyRent:  monthlyRent,
	}, nil
}

// PromoteToHeader turns the record into a header grouping row. Happens
// when the linked statement row first gains children.
func (u *Unit) PromoteToHeader() {
	u.Kind = KindHeader
	u.Touch()
}

// Rename changes the unit name
func (u *Unit) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxUnitNameLength {
		return shared.ErrInvalidInput
	}
	u.Name = name
	u.Touch()
	return nil
}

// SetRent updates the rent roll entry
func (u *Unit) SetRent(monthlyRent decimal.Decimal) {
	u.MonthlyRent = monthlyRent
	u.Touch()
}
