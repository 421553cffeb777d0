package units

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for units
type Repository interface {
	Create(ctx context.Context, u *Unit) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Unit, error)
	ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*Unit, error)
	Update(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error
}
