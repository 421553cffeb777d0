package statement

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists statements keyed by their owning property
type Repository interface {
	GetByPropertyID(ctx context.Context, tenantID, propertyID uuid.UUID) (*Statement, error)
	Save(ctx context.Context, tenantID uuid.UUID, st *Statement) error
	Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error
}
