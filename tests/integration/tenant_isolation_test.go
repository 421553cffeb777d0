// Tenant isolation tests: data written by one tenant must never be
// readable, listable, or deletable through another tenant's scope.
package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proforma/backend/internal/domain/attachment"
	"github.com/proforma/backend/internal/domain/property"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
	"github.com/proforma/backend/internal/domain/units"
	"github.com/proforma/backend/internal/infrastructure/persistence"
	"github.com/proforma/backend/tests/testutil"
)

type isolationFixture struct {
	DB             *TestDB
	PropertyRepo   *persistence.GormPropertyRepository
	StatementRepo  *persistence.GormStatementRepository
	UnitRepo       *persistence.GormUnitRepository
	AttachmentRepo *persistence.GormAttachmentRepository
	TenantA        uuid.UUID
	TenantB        uuid.UUID
}

func newIsolationFixture(t *testing.T) *isolationFixture {
	t.Helper()

	testDB := NewTestDB(t)
	testDB.CleanTables()

	return &isolationFixture{
		DB:             testDB,
		PropertyRepo:   persistence.NewGormPropertyRepository(testDB.DB),
		StatementRepo:  persistence.NewGormStatementRepository(testDB.DB),
		UnitRepo:       persistence.NewGormUnitRepository(testDB.DB),
		AttachmentRepo: persistence.NewGormAttachmentRepository(testDB.DB),
		TenantA:        testutil.NewTestUUID("tenant-a"),
		TenantB:        testutil.NewTestUUID("tenant-b"),
	}
}

func (f *isolationFixture) createProperty(t *testing.T, tenantID uuid.UUID, name string) *property.Property {
	t.Helper()

	p, err := property.NewProperty(tenantID, name, property.PropertyTypeMultifamily)
	require.NoError(t, err)
	require.NoError(t, f.PropertyRepo.Create(context.Background(), p))
	return p
}

func TestTenantIsolation_Properties(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newIsolationFixture(t)
	ctx := context.Background()

	propA := f.createProperty(t, f.TenantA, "Maple Court")

	t.Run("property_not_visible_to_other_tenant", func(t *testing.T) {
		found, err := f.PropertyRepo.GetByID(ctx, f.TenantA, propA.ID)
		require.NoError(t, err)
		assert.Equal(t, propA.ID, found.ID)

		_, err = f.PropertyRepo.GetByID(ctx, f.TenantB, propA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("property_list_is_tenant_scoped", func(t *testing.T) {
		f.createProperty(t, f.TenantB, "Birch Plaza")

		listA, totalA, err := f.PropertyRepo.List(ctx, f.TenantA, 0, 50)
		require.NoError(t, err)
		assert.EqualValues(t, 1, totalA)
		require.Len(t, listA, 1)
		assert.Equal(t, "Maple Court", listA[0].Name)

		_, totalB, err := f.PropertyRepo.List(ctx, f.TenantB, 0, 50)
		require.NoError(t, err)
		assert.EqualValues(t, 1, totalB)
	})

	t.Run("cross_tenant_delete_is_not_found", func(t *testing.T) {
		err := f.PropertyRepo.Delete(ctx, f.TenantB, propA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = f.PropertyRepo.GetByID(ctx, f.TenantA, propA.ID)
		require.NoError(t, err)
	})
}

func TestTenantIsolation_Statements(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newIsolationFixture(t)
	ctx := context.Background()

	propA := f.createProperty(t, f.TenantA, "Cedar Flats")
	st := statement.NewStatement(propA.ID, propA.Metrics())
	require.NoError(t, f.StatementRepo.Save(ctx, f.TenantA, st))

	found, err := f.StatementRepo.GetByPropertyID(ctx, f.TenantA, propA.ID)
	require.NoError(t, err)
	assert.Equal(t, propA.ID, found.PropertyID)

	_, err = f.StatementRepo.GetByPropertyID(ctx, f.TenantB, propA.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTenantIsolation_UnitsAndAttachments(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	f := newIsolationFixture(t)
	ctx := context.Background()

	propA := f.createProperty(t, f.TenantA, "Oak Terrace")

	u, err := units.NewUnit(f.TenantA, propA.ID, "Unit 101", decimal.NewFromInt(1450))
	require.NoError(t, err)
	require.NoError(t, f.UnitRepo.Create(ctx, u))

	a, err := attachment.NewAttachment(f.TenantA, propA.ID, "t12.pdf", "application/pdf", 2048)
	require.NoError(t, err)
	require.NoError(t, f.AttachmentRepo.Create(ctx, a))

	t.Run("units_scoped_by_tenant", func(t *testing.T) {
		listA, err := f.UnitRepo.ListByProperty(ctx, f.TenantA, propA.ID)
		require.NoError(t, err)
		assert.Len(t, listA, 1)

		listB, err := f.UnitRepo.ListByProperty(ctx, f.TenantB, propA.ID)
		require.NoError(t, err)
		assert.Empty(t, listB)

		_, err = f.UnitRepo.GetByID(ctx, f.TenantB, u.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("attachments_scoped_by_tenant", func(t *testing.T) {
		listA, err := f.AttachmentRepo.ListByProperty(ctx, f.TenantA, propA.ID)
		require.NoError(t, err)
		assert.Len(t, listA, 1)

		listB, err := f.AttachmentRepo.ListByProperty(ctx, f.TenantB, propA.ID)
		require.NoError(t, err)
		assert.Empty(t, listB)

		err = f.AttachmentRepo.Delete(ctx, f.TenantB, a.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
