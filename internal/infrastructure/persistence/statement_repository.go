package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
)

// statementModel is the persistence model for a Statement. The section
// trees are stored whole as JSON documents; every mutation rewrites the
// row, which matches the copy-on-write domain model.
type statementModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_statement_tenant_property,priority:1"`
	PropertyID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_statement_tenant_property,priority:2"`
	GrossBuildingArea decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	UnitCount         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Income            string          `gorm:"type:jsonb;not null"`
	OperatingExpenses string          `gorm:"type:jsonb;not null"`
	CapitalExpenses   string          `gorm:"type:jsonb;not null"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (statementModel) TableName() string {
	return "statements"
}

func statementModelFromDomain(tenantID uuid.UUID, st *statement.Statement) (*statementModel, error) {
	income, err := json.Marshal(st.Income)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal income section: %w", err)
	}
	opex, err := json.Marshal(st.OperatingExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal operating expenses section: %w", err)
	}
	capex, err := json.Marshal(st.CapitalExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capital expenses section: %w", err)
	}
	return &statementModel{
		ID:                st.ID,
		TenantID:          tenantID,
		PropertyID:        st.PropertyID,
		GrossBuildingArea: st.Metrics.GrossBuildingArea,
		UnitCount:         st.Metrics.UnitCount,
		Income:            string(income),
		OperatingExpenses: string(opex),
		CapitalExpenses:   string(capex),
		CreatedAt:         st.CreatedAt,
		UpdatedAt:         st.UpdatedAt,
	}, nil
}

func (m *statementModel) toDomain() (*statement.Statement, error) {
	st := &statement.Statement{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		PropertyID: m.PropertyID,
		Metrics: statement.Metrics{
			GrossBuildingArea: m.GrossBuildingArea,
			UnitCount:         m.UnitCount,
		},
	}
	if err := json.Unmarshal([]byte(m.Income), &st.Income); err != nil {
		return nil, fmt.Errorf("failed to unmarshal income section: %w", err)
	}
	if err := json.Unmarshal([]byte(m.OperatingExpenses), &st.OperatingExpenses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal operating expenses section: %w", err)
	}
	if err := json.Unmarshal([]byte(m.CapitalExpenses), &st.CapitalExpenses); err != nil {
		return nil, fmt.Errorf("failed to unmarshal capital expenses section: %w", err)
	}
	return st, nil
}

// GormStatementRepository implements statement.Repository using GORM
type GormStatementRepository struct {
	db *gorm.DB
}

// NewGormStatementRepository creates a new GormStatementRepository
func NewGormStatementRepository(db *gorm.DB) *GormStatementRepository {
	return &GormStatementRepository{db: db}
}

// GetByPropertyID loads the statement owned by the given property
func (r *GormStatementRepository) GetByPropertyID(ctx context.Context, tenantID, propertyID uuid.UUID) (*statement.Statement, error) {
	var model statementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND property_id = ?", tenantID, propertyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.toDomain()
}

// Save upserts the statement row for its property
func (r *GormStatementRepository) Save(ctx context.Context, tenantID uuid.UUID, st *statement.Statement) error {
	model, err := statementModelFromDomain(tenantID, st)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"gross_building_area", "unit_count",
				"income", "operating_expenses", "capital_expenses", "updated_at",
			}),
		}).
		Create(model).Error
}

// Delete removes the statement owned by the given property
func (r *GormStatementRepository) Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&statementModel{}, "tenant_id = ? AND property_id = ?", tenantID, propertyID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ statement.Repository = (*GormStatementRepository)(nil)
