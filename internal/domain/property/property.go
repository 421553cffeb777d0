// Package property holds the property aggregate: the building being
// underwritten, with the physical metrics its income statement derives
// per-square-foot and per-unit figures from.
package property

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
)

// PropertyType classifies the asset
type PropertyType string

const (
	PropertyTypeMultifamily PropertyType = "multifamily"
	PropertyTypeOffice      PropertyType = "office"
	PropertyTypeRetail      PropertyType = "retail"
	PropertyTypeIndustrial  PropertyType = "industrial"
	PropertyTypeMixedUse    PropertyType = "mixed_use"
)

const maxNameLength = 200

// Property is the aggregate root for one underwritten building
type Property struct {
	shared.TenantEntity
	Name              string          `gorm:"type:varchar(200);not null"`
	Type              PropertyType    `gorm:"type:varchar(20);not null;default:'multifamily'"`
	AddressLine       string          `gorm:"type:varchar(300)"`
	City              string          `gorm:"type:varchar(100)"`
	State             string          `gorm:"type:varchar(50)"`
	PostalCode        string          `gorm:"type:varchar(20)"`
	GrossBuildingArea decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"` // square feet
	UnitCount         int             `gorm:"not null;default:0"`
	AskingPrice       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	YearBuilt         int             `gorm:"default:0"`
	Notes             string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Property) TableName() string {
	return "properties"
}

// NewProperty creates a property with required fields
func NewProperty(tenantID uuid.UUID, name string, propertyType PropertyType) (*Property, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return nil, shared.ErrInvalidInput
	}
	if !propertyType.IsValid() {
		return nil, shared.ErrInvalidInput
	}
	return &Property{
		TenantEntity:      shared.NewTenantEntity(tenantID),
		Name:              name,
		Type:              propertyType,
		GrossBuildingArea: decimal.Zero,
		AskingPrice:       decimal.Zero,
	}, nil
}

// IsValid checks whether t names a known property type
func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeMultifamily, PropertyTypeOffice, PropertyTypeRetail,
		PropertyTypeIndustrial, PropertyTypeMixedUse:
		return true
	}
	return false
}

// Metrics exposes the statement divisors derived from the building
func (p *Property) Metrics() statement.Metrics {
	return statement.Metrics{
		GrossBuildingArea: p.GrossBuildingArea,
		UnitCount:         decimal.NewFromInt(int64(p.UnitCount)),
	}
}

// Rename changes the property name
func (p *Property) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return shared.ErrInvalidInput
	}
	p.Name = name
	p.Touch()
	return nil
}

// SetMetrics updates the physical divisors. Negative values are rejected;
// zero means unknown and disables the matching derivations.
func (p *Property) SetMetrics(grossBuildingArea decimal.Decimal, unitCount int) error {
	if grossBuildingArea.IsNegative() || unitCount < 0 {
		return shared.ErrInvalidInput
	}
	p.GrossBuildingArea = grossBuildingArea
	p.UnitCount = unitCount
	p.Touch()
	return nil
}
