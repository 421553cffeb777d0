package units

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ledger is the sync boundary the statement side writes through when a
// unit-linked row changes. Calls are fire-and-forget from the caller's
// point of view: the statement edit is committed first and a ledger
// failure surfaces as a warning, never a rollback.
type Ledger interface {
	CreateUnit(ctx context.Context, tenantID, propertyID uuid.UUID, name string, monthlyRent decimal.Decimal) (*Unit, error)
	RenameUnit(ctx context.Context, tenantID, unitID uuid.UUID, name string) error
	SetUnitRent(ctx context.Context, tenantID, unitID uuid.UUID, monthlyRent decimal.Decimal) error
	PromoteToHeader(ctx context.Context, tenantID, unitID uuid.UUID) error
	DeleteUnit(ctx context.Context, tenantID, unitID uuid.UUID) error
}
