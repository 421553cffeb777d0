package units

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/units"
)

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID          uuid.UUID       `json:"id"`
	PropertyID  uuid.UUID       `json:"property_id"`
	Name        string          `json:"name"`
	Kind        units.Kind      `json:"kind"`
	MonthlyRent decimal.Decimal `json:"monthly_rent"`
	SquareFeet  decimal.Decimal `json:"square_feet"`
	Bedrooms    int             `json:"bedrooms"`
	Bathrooms   decimal.Decimal `json:"bathrooms"`
	Occupied    bool            `json:"occupied"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// UpdateUnitRequest represents a direct rent-roll edit
type UpdateUnitRequest struct {
	SquareFeet *decimal.Decimal `json:"square_feet"`
	Bedrooms   *int             `json:"bedrooms" binding:"omitempty,min=0,max=20"`
	Bathrooms  *decimal.Decimal `json:"bathrooms"`
	Occupied   *bool            `json:"occupied"`
}

func toUnitResponse(u *units.Unit) *UnitResponse {
	return &UnitResponse{
		ID:          u.ID,
		PropertyID:  u.PropertyID,
		Name:        u.Name,
		Kind:        u.Kind,
		MonthlyRent: u.MonthlyRent,
		SquareFeet:  u.SquareFeet,
		Bedrooms:    u.Bedrooms,
		Bathrooms:   u.Bathrooms,
		Occupied:    u.Occupied,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
