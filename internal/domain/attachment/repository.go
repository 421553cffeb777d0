package attachment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for attachments
type Repository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Attachment, error)
	ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*Attachment, error)
	// ListStalePending returns pending attachments older than the cutoff,
	// across tenants, oldest first, at most limit rows.
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*Attachment, error)
	Update(ctx context.Context, a *Attachment) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}
