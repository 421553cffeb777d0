package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/units"
)

// GormUnitRepository implements units.Repository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// Create inserts a new unit
func (r *GormUnitRepository) Create(ctx context.Context, u *units.Unit) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// GetByID finds a unit by ID within a tenant
func (r *GormUnitRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*units.Unit, error) {
	var u units.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListByProperty returns all units of a property ordered by name
func (r *GormUnitRepository) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*units.Unit, error) {
	var list []*units.Unit
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		Order("name ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// Update saves changes to an existing unit
func (r *GormUnitRepository) Update(ctx context.Context, u *units.Unit) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// Delete removes a unit within a tenant
func (r *GormUnitRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&units.Unit{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProperty removes every unit of a property. Deleting a property
// with no units is not an error.
func (r *GormUnitRepository) DeleteByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&units.Unit{}, "tenant_id = ? AND property_id = ?", tenantID, propertyID).Error
}

var _ units.Repository = (*GormUnitRepository)(nil)
