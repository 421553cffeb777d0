package statement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/proforma/backend/internal/domain/statement"
)

// =============================================================================
// Requests
// =============================================================================

// EditFieldRequest applies one numeric edit to a row. A null value clears
// the targeted derivation family to zero.
type EditFieldRequest struct {
	Section string           `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path    []string         `json:"path" binding:"required,min=1,dive,required"`
	Field   string           `json:"field" binding:"required"`
	Value   *decimal.Decimal `json:"value"`
}

// RenameRowRequest changes a row label
type RenameRowRequest struct {
	Section string   `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path    []string `json:"path" binding:"required,min=1,dive,required"`
	Label   string   `json:"label" binding:"required,min=1,max=120"`
}

// AddRootRowRequest appends a root row, or inserts it before an existing
// row when before_id is set
type AddRootRowRequest struct {
	Section  string `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Label    string `json:"label" binding:"required,min=1,max=120"`
	BeforeID string `json:"before_id"`
}

// AddChildrenRequest adds child rows under a row. With link_units set,
// each child is backed by a new record in the unit ledger.
type AddChildrenRequest struct {
	Section   string   `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path      []string `json:"path" binding:"required,min=1,dive,required"`
	Labels    []string `json:"labels" binding:"required,min=1,max=10,dive,min=1,max=120"`
	LinkUnits bool     `json:"link_units"`
}

// DeleteRowRequest removes a row and its subtree
type DeleteRowRequest struct {
	Section string   `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path    []string `json:"path" binding:"required,min=1,dive,required"`
}

// CloneRowRequest duplicates a row count times
type CloneRowRequest struct {
	Section string   `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path    []string `json:"path" binding:"required,min=1,dive,required"`
	Count   int      `json:"count" binding:"required,min=1,max=10"`
}

// ReorderRequest replaces the row order of a scope. An empty path reorders
// the section root; otherwise the children of the row at path.
type ReorderRequest struct {
	Section string   `json:"section" binding:"required,oneof=income operating_expenses capital_expenses"`
	Path    []string `json:"path" binding:"omitempty,dive,required"`
	Order   []string `json:"order" binding:"required,min=1,dive,required"`
}

// =============================================================================
// Responses
// =============================================================================

// MetricsResponse carries the derivation divisors in effect
type MetricsResponse struct {
	GrossBuildingArea decimal.Decimal `json:"gross_building_area"`
	UnitCount         decimal.Decimal `json:"unit_count"`
}

// StatementResponse is the full statement document plus its rollups. The
// sections keep the engine's JSON shape (ordered IDs + item map) so the
// client renders without re-deriving anything. Warnings carry unit-ledger
// sync failures; the local edit they accompany has already been saved.
type StatementResponse struct {
	PropertyID         uuid.UUID          `json:"property_id"`
	Metrics            MetricsResponse    `json:"metrics"`
	Income             *statement.Section `json:"income"`
	OperatingExpenses  *statement.Section `json:"operating_expenses"`
	CapitalExpenses    *statement.Section `json:"capital_expenses"`
	NetOperatingIncome statement.Amounts  `json:"net_operating_income"`
	CashFlow           statement.Amounts  `json:"cash_flow"`
	Warnings           []string           `json:"warnings,omitempty"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func toStatementResponse(st *statement.Statement, warnings []string) *StatementResponse {
	return &StatementResponse{
		PropertyID: st.PropertyID,
		Metrics: MetricsResponse{
			GrossBuildingArea: st.Metrics.GrossBuildingArea,
			UnitCount:         st.Metrics.UnitCount,
		},
		Income:             st.Income,
		OperatingExpenses:  st.OperatingExpenses,
		CapitalExpenses:    st.CapitalExpenses,
		NetOperatingIncome: st.NetOperatingIncome(),
		CashFlow:           st.CashFlow(),
		Warnings:           warnings,
		UpdatedAt:          st.UpdatedAt,
	}
}
