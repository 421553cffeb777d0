// End-to-end underwriting flow over a real database: create a property,
// build out its income statement, link rent roll units, and tear the
// property down with its cascade.
package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	attachmentapp "github.com/proforma/backend/internal/application/attachment"
	propertyapp "github.com/proforma/backend/internal/application/property"
	statementapp "github.com/proforma/backend/internal/application/statement"
	unitsapp "github.com/proforma/backend/internal/application/units"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
	"github.com/proforma/backend/internal/infrastructure/billing"
	"github.com/proforma/backend/internal/infrastructure/config"
	"github.com/proforma/backend/internal/infrastructure/persistence"
	"github.com/proforma/backend/internal/infrastructure/storage"
	"github.com/proforma/backend/tests/testutil"
)

type flowFixture struct {
	Properties  *propertyapp.PropertyService
	Statements  *statementapp.StatementService
	Units       *unitsapp.UnitService
	Attachments *attachmentapp.AttachmentService
	TenantID    uuid.UUID
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()

	testDB := NewTestDB(t)
	testDB.CleanTables()
	log := zap.NewNop()

	propertyRepo := persistence.NewGormPropertyRepository(testDB.DB)
	statementRepo := persistence.NewGormStatementRepository(testDB.DB)
	unitRepo := persistence.NewGormUnitRepository(testDB.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(testDB.DB)

	attachmentService := attachmentapp.NewAttachmentService(attachmentRepo, storage.NewStubObjectStorage(), log)
	planGate := billing.NewStaticPlanGate(config.BillingConfig{FreePlanPropertyLimit: 5, ProPlanPropertyLimit: 100}, log)
	unitService := unitsapp.NewUnitService(unitRepo, log)

	return &flowFixture{
		Properties:  propertyapp.NewPropertyService(propertyRepo, statementRepo, unitRepo, attachmentService, planGate, log),
		Statements:  statementapp.NewStatementService(statementRepo, unitService, log),
		Units:       unitService,
		Attachments: attachmentService,
		TenantID:    testutil.NewTestUUID("flow-tenant"),
	}
}

func TestUnderwritingFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newFlowFixture(t)
	ctx := context.Background()

	unitCount := 4
	area := decimal.NewFromInt(4000)
	prop, err := f.Properties.Create(ctx, f.TenantID, propertyapp.CreatePropertyRequest{
		Name:              "Walnut Row",
		Type:              "multifamily",
		UnitCount:         &unitCount,
		GrossBuildingArea: &area,
	})
	require.NoError(t, err)

	t.Run("statement_provisioned_with_anchors", func(t *testing.T) {
		st, err := f.Statements.Get(ctx, f.TenantID, prop.ID)
		require.NoError(t, err)
		require.NotEmpty(t, st.Income.Order)
		assert.Equal(t, statement.GrossScheduledRentID, st.Income.Order[0])
	})

	t.Run("edit_reconciles_derived_columns", func(t *testing.T) {
		v := decimal.NewFromInt(1200)
		st, err := f.Statements.EditField(ctx, f.TenantID, prop.ID, statementapp.EditFieldRequest{
			Section: "income",
			Path:    []string{statement.GrossScheduledRentID},
			Field:   string(statement.FieldGrossMonthly),
			Value:   &v,
		})
		require.NoError(t, err)

		row := st.Income.Items[statement.GrossScheduledRentID]
		require.NotNil(t, row)
		assert.True(t, row.Amounts.Get(statement.FieldGrossAnnual).Equal(decimal.NewFromInt(14400)))
		assert.True(t, row.Amounts.Get(statement.FieldPUnitMonthly).Equal(decimal.NewFromInt(300)))
	})

	t.Run("unit_linked_rows_build_the_rent_roll", func(t *testing.T) {
		st, err := f.Statements.AddRootRow(ctx, f.TenantID, prop.ID, statementapp.AddRootRowRequest{
			Section: "income",
			Label:   "Rental Income",
		})
		require.NoError(t, err)

		var rowID string
		for _, id := range st.Income.Order {
			if st.Income.Items[id].Label == "Rental Income" {
				rowID = id
			}
		}
		require.NotEmpty(t, rowID)

		_, err = f.Statements.AddChildren(ctx, f.TenantID, prop.ID, statementapp.AddChildrenRequest{
			Section:   "income",
			Path:      []string{rowID},
			Labels:    []string{"Unit 101", "Unit 102"},
			LinkUnits: true,
		})
		require.NoError(t, err)

		roll, err := f.Units.ListByProperty(ctx, f.TenantID, prop.ID)
		require.NoError(t, err)
		names := make([]string, 0, len(roll))
		for _, u := range roll {
			names = append(names, u.Name)
		}
		assert.ElementsMatch(t, []string{"Unit 101", "Unit 102"}, names)
	})

	t.Run("delete_cascades_statement_and_units", func(t *testing.T) {
		require.NoError(t, f.Properties.Delete(ctx, f.TenantID, prop.ID))

		_, err := f.Statements.Get(ctx, f.TenantID, prop.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		roll, err := f.Units.ListByProperty(ctx, f.TenantID, prop.ID)
		require.NoError(t, err)
		assert.Empty(t, roll)
	})
}
