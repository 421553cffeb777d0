package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proforma/backend/internal/domain/property"
	"github.com/proforma/backend/internal/domain/shared"
)

// GormPropertyRepository implements property.Repository using GORM
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// Create inserts a new property
func (r *GormPropertyRepository) Create(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID finds a property by ID within a tenant
func (r *GormPropertyRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	var p property.Property
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a page of properties for a tenant plus the total count
func (r *GormPropertyRepository) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*property.Property, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&property.Property{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []*property.Property
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// Update saves changes to an existing property
func (r *GormPropertyRepository) Update(ctx context.Context, p *property.Property) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Delete removes a property within a tenant
func (r *GormPropertyRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&property.Property{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByTenant counts all properties owned by the tenant
func (r *GormPropertyRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&property.Property{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ property.Repository = (*GormPropertyRepository)(nil)
