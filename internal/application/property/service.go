// Package property manages the property catalogue. Creating a property
// provisions its statement document; deleting one tears down the
// statement, the unit ledger, and any uploaded documents with it.
package property

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/property"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
	"github.com/proforma/backend/internal/domain/units"
)

// PlanGate checks subscription limits before resource creation
type PlanGate interface {
	CanCreateProperty(ctx context.Context, tenantID uuid.UUID, current int64) error
}

// AttachmentPurger removes every document a property owns, storage bytes
// included
type AttachmentPurger interface {
	PurgeProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error
}

// PropertyService handles property CRUD and lifecycle
type PropertyService struct {
	propertyRepo  property.Repository
	statementRepo statement.Repository
	unitRepo      units.Repository
	attachments   AttachmentPurger
	planGate      PlanGate
	logger        *zap.Logger
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(
	propertyRepo property.Repository,
	statementRepo statement.Repository,
	unitRepo units.Repository,
	attachments AttachmentPurger,
	planGate PlanGate,
	logger *zap.Logger,
) *PropertyService {
	return &PropertyService{
		propertyRepo:  propertyRepo,
		statementRepo: statementRepo,
		unitRepo:      unitRepo,
		attachments:   attachments,
		planGate:      planGate,
		logger:        logger,
	}
}

// Create creates a property and provisions its empty statement
func (s *PropertyService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePropertyRequest) (*PropertyResponse, error) {
	count, err := s.propertyRepo.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.planGate.CanCreateProperty(ctx, tenantID, count); err != nil {
		return nil, err
	}

	p, err := property.NewProperty(tenantID, req.Name, property.PropertyType(req.Type))
	if err != nil {
		return nil, err
	}
	p.AddressLine = req.AddressLine
	p.City = req.City
	p.State = req.State
	p.PostalCode = req.PostalCode
	p.Notes = req.Notes
	if req.GrossBuildingArea != nil || req.UnitCount != nil {
		gba := p.GrossBuildingArea
		unitCount := p.UnitCount
		if req.GrossBuildingArea != nil {
			gba = *req.GrossBuildingArea
		}
		if req.UnitCount != nil {
			unitCount = *req.UnitCount
		}
		if err := p.SetMetrics(gba, unitCount); err != nil {
			return nil, err
		}
	}
	if req.AskingPrice != nil {
		p.AskingPrice = *req.AskingPrice
	}
	if req.YearBuilt != nil {
		p.YearBuilt = *req.YearBuilt
	}

	if err := s.propertyRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	st := statement.NewStatement(p.ID, p.Metrics())
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}
	s.logger.Info("property created",
		zap.String("property_id", p.ID.String()),
		zap.String("tenant_id", tenantID.String()))
	return toPropertyResponse(p), nil
}

// Get returns one property
func (s *PropertyService) Get(ctx context.Context, tenantID, id uuid.UUID) (*PropertyResponse, error) {
	p, err := s.propertyRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return toPropertyResponse(p), nil
}

// List returns a page of the tenant's properties
func (s *PropertyService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) (*PropertyListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	items, total, err := s.propertyRepo.List(ctx, tenantID, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*PropertyResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPropertyResponse(p))
	}
	return &PropertyListResponse{Items: out, Total: total}, nil
}

// Update applies a partial update. Changing the building metrics only
// changes the divisors used by future reconciliations; stored statement
// rows are never retro-recomputed.
func (s *PropertyService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdatePropertyRequest) (*PropertyResponse, error) {
	p, err := s.propertyRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if err := p.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.AddressLine != nil {
		p.AddressLine = *req.AddressLine
	}
	if req.City != nil {
		p.City = *req.City
	}
	if req.State != nil {
		p.State = *req.State
	}
	if req.PostalCode != nil {
		p.PostalCode = *req.PostalCode
	}
	if req.AskingPrice != nil {
		p.AskingPrice = *req.AskingPrice
	}
	if req.YearBuilt != nil {
		p.YearBuilt = *req.YearBuilt
	}
	if req.Notes != nil {
		p.Notes = *req.Notes
	}

	metricsChanged := req.GrossBuildingArea != nil || req.UnitCount != nil
	if metricsChanged {
		gba := p.GrossBuildingArea
		unitCount := p.UnitCount
		if req.GrossBuildingArea != nil {
			gba = *req.GrossBuildingArea
		}
		if req.UnitCount != nil {
			unitCount = *req.UnitCount
		}
		if err := p.SetMetrics(gba, unitCount); err != nil {
			return nil, err
		}
	}

	p.Touch()
	if err := s.propertyRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if metricsChanged {
		st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, id)
		if err != nil {
			return nil, err
		}
		st.Metrics = p.Metrics()
		st.Touch()
		if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
			return nil, err
		}
	}
	return toPropertyResponse(p), nil
}

// Delete removes the property and everything hanging off it
func (s *PropertyService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.propertyRepo.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.attachments.PurgeProperty(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.unitRepo.DeleteByProperty(ctx, tenantID, id); err != nil {
		return err
	}
	if err := s.statementRepo.Delete(ctx, tenantID, id); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return err
	}
	if err := s.propertyRepo.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.logger.Info("property deleted",
		zap.String("property_id", id.String()),
		zap.String("tenant_id", tenantID.String()))
	return nil
}
