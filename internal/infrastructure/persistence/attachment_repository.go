package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proforma/backend/internal/domain/attachment"
	"github.com/proforma/backend/internal/domain/shared"
)

// GormAttachmentRepository implements attachment.Repository using GORM
type GormAttachmentRepository struct {
	db *gorm.DB
}

// NewGormAttachmentRepository creates a new GormAttachmentRepository
func NewGormAttachmentRepository(db *gorm.DB) *GormAttachmentRepository {
	return &GormAttachmentRepository{db: db}
}

// Create inserts a new attachment record
func (r *GormAttachmentRepository) Create(ctx context.Context, a *attachment.Attachment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// GetByID finds an attachment by ID within a tenant
func (r *GormAttachmentRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*attachment.Attachment, error) {
	var a attachment.Attachment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByProperty returns all attachments of a property, newest first
func (r *GormAttachmentRepository) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*attachment.Attachment, error) {
	var list []*attachment.Attachment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListStalePending returns pending attachments created before olderThan,
// across tenants, oldest first. Used by the cleanup scheduler.
func (r *GormAttachmentRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*attachment.Attachment, error) {
	var list []*attachment.Attachment
	if err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", attachment.StatusPending, olderThan).
		Order("created_at ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update saves changes to an existing attachment
func (r *GormAttachmentRepository) Update(ctx context.Context, a *attachment.Attachment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

// Delete removes an attachment within a tenant
func (r *GormAttachmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&attachment.Attachment{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ attachment.Repository = (*GormAttachmentRepository)(nil)
