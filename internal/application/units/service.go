// Package units exposes the rent roll: listing a property's units and the
// ledger write operations the statement side syncs through.
package units

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/units"
)

// UnitService handles unit ledger operations. It is the concrete
// implementation of the units.Ledger boundary the statement service writes
// through; rent roll reads go straight here.
type UnitService struct {
	unitRepo units.Repository
	logger   *zap.Logger
}

// NewUnitService creates a new UnitService
func NewUnitService(unitRepo units.Repository, logger *zap.Logger) *UnitService {
	return &UnitService{
		unitRepo: unitRepo,
		logger:   logger,
	}
}

var _ units.Ledger = (*UnitService)(nil)

// ListByProperty returns the property's units
func (s *UnitService) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*UnitResponse, error) {
	list, err := s.unitRepo.ListByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]*UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUnitResponse(u))
	}
	return out, nil
}

// Get returns a single unit
func (s *UnitService) Get(ctx context.Context, tenantID, id uuid.UUID) (*UnitResponse, error) {
	u, err := s.unitRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

// Update applies a direct rent-roll edit to the unit's descriptive fields.
// Name and rent changes flow through the ledger interface instead so the
// statement stays the system of record for them.
func (s *UnitService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateUnitRequest) (*UnitResponse, error) {
	u, err := s.unitRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.SquareFeet != nil {
		u.SquareFeet = *req.SquareFeet
	}
	if req.Bedrooms != nil {
		u.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		u.Bathrooms = *req.Bathrooms
	}
	if req.Occupied != nil {
		u.Occupied = *req.Occupied
	}
	u.Touch()
	if err := s.unitRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return toUnitResponse(u), nil
}

// CreateUnit implements units.Ledger
func (s *UnitService) CreateUnit(ctx context.Context, tenantID, propertyID uuid.UUID, name string, monthlyRent decimal.Decimal) (*units.Unit, error) {
	u, err := units.NewUnit(tenantID, propertyID, name, monthlyRent)
	if err != nil {
		return nil, err
	}
	if err := s.unitRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("unit created",
		zap.String("unit_id", u.ID.String()),
		zap.String("property_id", propertyID.String()))
	return u, nil
}

// RenameUnit implements units.Ledger
func (s *UnitService) RenameUnit(ctx context.Context, tenantID, unitID uuid.UUID, name string) error {
	u, err := s.unitRepo.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return err
	}
	if err := u.Rename(name); err != nil {
		return err
	}
	return s.unitRepo.Update(ctx, u)
}

// SetUnitRent implements units.Ledger
func (s *UnitService) SetUnitRent(ctx context.Context, tenantID, unitID uuid.UUID, monthlyRent decimal.Decimal) error {
	u, err := s.unitRepo.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return err
	}
	u.SetRent(monthlyRent)
	return s.unitRepo.Update(ctx, u)
}

// PromoteToHeader implements units.Ledger
func (s *UnitService) PromoteToHeader(ctx context.Context, tenantID, unitID uuid.UUID) error {
	u, err := s.unitRepo.GetByID(ctx, tenantID, unitID)
	if err != nil {
		return err
	}
	u.PromoteToHeader()
	return s.unitRepo.Update(ctx, u)
}

// DeleteUnit implements units.Ledger
func (s *UnitService) DeleteUnit(ctx context.Context, tenantID, unitID uuid.UUID) error {
	return s.unitRepo.Delete(ctx, tenantID, unitID)
}
