package property

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/property"
)

// CreatePropertyRequest represents a request to create a property
type CreatePropertyRequest struct {
	Name              string           `json:"name" binding:"required,min=1,max=200"`
	Type              string           `json:"type" binding:"required,oneof=multifamily office retail industrial mixed_use"`
	AddressLine       string           `json:"address_line" binding:"max=300"`
	City              string           `json:"city" binding:"max=100"`
	State             string           `json:"state" binding:"max=50"`
	PostalCode        string           `json:"postal_code" binding:"max=20"`
	GrossBuildingArea *decimal.Decimal `json:"gross_building_area"`
	UnitCount         *int             `json:"unit_count" binding:"omitempty,min=0"`
	AskingPrice       *decimal.Decimal `json:"asking_price"`
	YearBuilt         *int             `json:"year_built" binding:"omitempty,min=1800,max=2100"`
	Notes             string           `json:"notes"`
}

// UpdatePropertyRequest represents a request to update a property
type UpdatePropertyRequest struct {
	Name              *string          `json:"name" binding:"omitempty,min=1,max=200"`
	AddressLine       *string          `json:"address_line" binding:"omitempty,max=300"`
	City              *string          `json:"city" binding:"omitempty,max=100"`
	State             *string          `json:"state" binding:"omitempty,max=50"`
	PostalCode        *string          `json:"postal_code" binding:"omitempty,max=20"`
	GrossBuildingArea *decimal.Decimal `json:"gross_building_area"`
	UnitCount         *int             `json:"unit_count" binding:"omitempty,min=0"`
	AskingPrice       *decimal.Decimal `json:"asking_price"`
	YearBuilt         *int             `json:"year_built" binding:"omitempty,min=1800,max=2100"`
	Notes             *string          `json:"notes"`
}

// PropertyResponse represents a property in API responses
type PropertyResponse struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	AddressLine       string          `json:"address_line"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	PostalCode        string          `json:"postal_code"`
	GrossBuildingArea decimal.Decimal `json:"gross_building_area"`
	UnitCount         int             `json:"unit_count"`
	AskingPrice       decimal.Decimal `json:"asking_price"`
	YearBuilt         int             `json:"year_built"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PropertyListResponse is a page of properties
type PropertyListResponse struct {
	Items []*PropertyResponse `json:"items"`
	Total int64               `json:"total"`
}

func toPropertyResponse(p *property.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:                p.ID,
		Name:              p.Name,
		Type:              string(p.Type),
		AddressLine:       p.AddressLine,
		City:              p.City,
		State:             p.State,
		PostalCode:        p.PostalCode,
		GrossBuildingArea: p.GrossBuildingArea,
		UnitCount:         p.UnitCount,
		AskingPrice:       p.AskingPrice,
		YearBuilt:         p.YearBuilt,
		Notes:             p.Notes,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
