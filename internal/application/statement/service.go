// Package statement orchestrates the reconciliation engine: it loads the
// statement document, applies engine operations, persists the result, and
// keeps the unit ledger in step with linked rows. Ledger sync is
// local-first: the statement write always lands, and ledger failures come
// back as warnings on the response.
package statement

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
	"github.com/proforma/backend/internal/domain/units"
)

// labelPolicy strips all markup from user-entered row labels
var labelPolicy = bluemonday.StrictPolicy()

func sanitizeLabel(label string) (string, error) {
	clean := strings.TrimSpace(labelPolicy.Sanitize(label))
	if clean == "" {
		return "", shared.ErrInvalidInput
	}
	return clean, nil
}

// StatementService handles statement operations for one property at a time
type StatementService struct {
	statementRepo statement.Repository
	ledger        units.Ledger
	logger        *zap.Logger
}

// NewStatementService creates a new StatementService
func NewStatementService(statementRepo statement.Repository, ledger units.Ledger, logger *zap.Logger) *StatementService {
	return &StatementService{
		statementRepo: statementRepo,
		ledger:        ledger,
		logger:        logger,
	}
}

// Get returns the property's statement with current rollups
func (s *StatementService) Get(ctx context.Context, tenantID, propertyID uuid.UUID) (*StatementResponse, error) {
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	return toStatementResponse(st, nil), nil
}

// EditField applies one numeric edit and persists the reconciled row. When
// the row is linked to a unit and its gross monthly figure changed, the
// new value is pushed to the unit ledger as the rent roll entry.
func (s *StatementService) EditField(ctx context.Context, tenantID, propertyID uuid.UUID, req EditFieldRequest) (*StatementResponse, error) {
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}

	var before decimal.Decimal
	if prev := sec.Get(req.Path...); prev != nil {
		before = prev.Amounts.GrossMonthly
	}

	input := decimal.NullDecimal{}
	if req.Value != nil {
		input = decimal.NullDecimal{Decimal: *req.Value, Valid: true}
	}
	next, err := sec.Edit(req.Path, statement.Field(req.Field), input, st.Metrics)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}

	var warnings []string
	node := next.Get(req.Path...)
	if node.LinkedUnitID != "" && !node.Amounts.GrossMonthly.Equal(before) {
		warnings = s.syncRent(ctx, tenantID, node, warnings)
	}
	return toStatementResponse(st, warnings), nil
}

// RenameRow relabels a row and pushes the new name to a linked unit
func (s *StatementService) RenameRow(ctx context.Context, tenantID, propertyID uuid.UUID, req RenameRowRequest) (*StatementResponse, error) {
	label, err := sanitizeLabel(req.Label)
	if err != nil {
		return nil, err
	}
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}
	next, err := sec.RenameNode(req.Path, label)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}

	var warnings []string
	node := next.Get(req.Path...)
	if node.LinkedUnitID != "" {
		if unitID, parseErr := uuid.Parse(node.LinkedUnitID); parseErr == nil {
			if err := s.ledger.RenameUnit(ctx, tenantID, unitID, label); err != nil {
				warnings = s.warn(warnings, "unit rename failed for %s: %v", node.LinkedUnitID, err)
			}
		}
	}
	return toStatementResponse(st, warnings), nil
}

// AddRootRow adds a new root row to a section
func (s *StatementService) AddRootRow(ctx context.Context, tenantID, propertyID uuid.UUID, req AddRootRowRequest) (*StatementResponse, error) {
	label, err := sanitizeLabel(req.Label)
	if err != nil {
		return nil, err
	}
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}
	next, _, err := sec.AddRootItem(label, req.BeforeID)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}
	return toStatementResponse(st, nil), nil
}

// AddChildren adds child rows under a row, promoting a linked leaf to a
// header first so its unit link survives on the moved-down child; the
// linked ledger record is promoted to header kind at the same time. With
// LinkUnits set, ledger records are created sequentially before the local
// insert; a failed creation leaves that child unlinked and adds a warning.
// Capacity is checked before any ledger write so a rejected add never
// leaves unit records behind.
func (s *StatementService) AddChildren(ctx context.Context, tenantID, propertyID uuid.UUID, req AddChildrenRequest) (*StatementResponse, error) {
	labels := make([]string, 0, len(req.Labels))
	for _, raw := range req.Labels {
		label, err := sanitizeLabel(raw)
		if err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}

	target := sec.Get(req.Path...)
	if target == nil {
		return nil, statement.ErrPathNotFound
	}
	if target.IsSubtotal {
		return nil, statement.ErrSubtotalReadOnly
	}
	existing := target.NonSubtotalChildCount()
	promote := !target.HasChildren() && target.LinkedUnitID != ""
	if promote {
		// The promote moves the row itself onto a first child.
		existing = 1
	}
	if existing+len(labels) > statement.MaxChildren {
		return nil, statement.ErrMaxChildren
	}

	var warnings []string
	if promote {
		if unitID, parseErr := uuid.Parse(target.LinkedUnitID); parseErr == nil {
			if err := s.ledger.PromoteToHeader(ctx, tenantID, unitID); err != nil {
				warnings = s.warn(warnings, "unit promotion failed for %s: %v", target.LinkedUnitID, err)
			}
		}
		promoted, _, err := sec.Promote(req.Path)
		if err != nil {
			return nil, err
		}
		sec = promoted
	}

	created := make([]*units.Unit, len(labels))
	if req.LinkUnits {
		for i, label := range labels {
			u, err := s.ledger.CreateUnit(ctx, tenantID, propertyID, label, decimal.Zero)
			if err != nil {
				warnings = s.warn(warnings, "unit creation failed for %q: %v", label, err)
				continue
			}
			created[i] = u
		}
	}

	next, added, err := sec.AddChildren(req.Path, labels)
	if err != nil {
		return nil, err
	}
	for i, node := range added {
		if created[i] != nil {
			node.LinkedUnitID = created[i].ID.String()
		}
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}
	return toStatementResponse(st, warnings), nil
}

// DeleteRow removes a row and its subtree, then releases every unit record
// the detached subtree was linked to
func (s *StatementService) DeleteRow(ctx context.Context, tenantID, propertyID uuid.UUID, req DeleteRowRequest) (*StatementResponse, error) {
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}
	next, removed, err := sec.DeleteNode(req.Path)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}

	var warnings []string
	for _, linkedID := range removed.LinkedUnitIDs() {
		unitID, parseErr := uuid.Parse(linkedID)
		if parseErr != nil {
			continue
		}
		if err := s.ledger.DeleteUnit(ctx, tenantID, unitID); err != nil {
			warnings = s.warn(warnings, "unit delete failed for %s: %v", linkedID, err)
		}
	}
	return toStatementResponse(st, warnings), nil
}

// CloneRow duplicates a row. Copies never share unit links.
func (s *StatementService) CloneRow(ctx context.Context, tenantID, propertyID uuid.UUID, req CloneRowRequest) (*StatementResponse, error) {
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}
	next, _, err := sec.CloneNode(req.Path, req.Count)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}
	return toStatementResponse(st, nil), nil
}

// Reorder replaces the row order of a scope. Stored signs are not touched;
// a row moved across the Net Rental Income boundary keeps its value until
// the next edit re-applies the band's sign.
func (s *StatementService) Reorder(ctx context.Context, tenantID, propertyID uuid.UUID, req ReorderRequest) (*StatementResponse, error) {
	st, err := s.statementRepo.GetByPropertyID(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	sec := st.Section(statement.SectionKey(req.Section))
	if sec == nil {
		return nil, shared.ErrInvalidInput
	}
	next, err := sec.Reorder(req.Path, req.Order)
	if err != nil {
		return nil, err
	}
	st.ReplaceSection(next)
	if err := s.statementRepo.Save(ctx, tenantID, st); err != nil {
		return nil, err
	}
	return toStatementResponse(st, nil), nil
}

func (s *StatementService) syncRent(ctx context.Context, tenantID uuid.UUID, node *statement.Node, warnings []string) []string {
	unitID, err := uuid.Parse(node.LinkedUnitID)
	if err != nil {
		return warnings
	}
	if err := s.ledger.SetUnitRent(ctx, tenantID, unitID, node.Amounts.GrossMonthly); err != nil {
		return s.warn(warnings, "unit rent sync failed for %s: %v", node.LinkedUnitID, err)
	}
	return warnings
}

func (s *StatementService) warn(warnings []string, format string, args ...any) []string {
	msg := fmt.Sprintf(format, args...)
	s.logger.Warn("unit ledger sync", zap.String("detail", msg))
	return append(warnings, msg)
}
