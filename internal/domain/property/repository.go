package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for properties
type Repository interface {
	Create(ctx context.Context, p *Property) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Property, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*Property, int64, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
