package property

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/property"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/domain/statement"
	"github.com/proforma/backend/internal/domain/units"
)

// =============================================================================
// Fakes and mocks
// =============================================================================

// fakePropertyRepo is an in-memory property repository
type fakePropertyRepo struct {
	items map[uuid.UUID]*property.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{items: map[uuid.UUID]*property.Property{}}
}

func (f *fakePropertyRepo) Create(ctx context.Context, p *property.Property) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*property.Property, error) {
	p, ok := f.items[id]
	if !ok || p.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (f *fakePropertyRepo) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]*property.Property, int64, error) {
	var out []*property.Property
	for _, p := range f.items {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePropertyRepo) Update(ctx context.Context, p *property.Property) error {
	f.items[p.ID] = p
	return nil
}

func (f *fakePropertyRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := f.GetByID(ctx, tenantID, id); err != nil {
		return err
	}
	delete(f.items, id)
	return nil
}

func (f *fakePropertyRepo) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.items {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

// fakeStatementRepo stores statements keyed by property
type fakeStatementRepo struct {
	items map[uuid.UUID]*statement.Statement
}

func newFakeStatementRepo() *fakeStatementRepo {
	return &fakeStatementRepo{items: map[uuid.UUID]*statement.Statement{}}
}

func (f *fakeStatementRepo) GetByPropertyID(ctx context.Context, tenantID, propertyID uuid.UUID) (*statement.Statement, error) {
	st, ok := f.items[propertyID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return st, nil
}

func (f *fakeStatementRepo) Save(ctx context.Context, tenantID uuid.UUID, st *statement.Statement) error {
	f.items[st.PropertyID] = st
	return nil
}

func (f *fakeStatementRepo) Delete(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	if _, ok := f.items[propertyID]; !ok {
		return shared.ErrNotFound
	}
	delete(f.items, propertyID)
	return nil
}

// fakeUnitRepo only tracks per-property deletion
type fakeUnitRepo struct {
	byProperty map[uuid.UUID][]*units.Unit
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{byProperty: map[uuid.UUID][]*units.Unit{}}
}

func (f *fakeUnitRepo) Create(ctx context.Context, u *units.Unit) error {
	f.byProperty[u.PropertyID] = append(f.byProperty[u.PropertyID], u)
	return nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*units.Unit, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeUnitRepo) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*units.Unit, error) {
	return f.byProperty[propertyID], nil
}

func (f *fakeUnitRepo) Update(ctx context.Context, u *units.Unit) error { return nil }

func (f *fakeUnitRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error { return nil }

func (f *fakeUnitRepo) DeleteByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	delete(f.byProperty, propertyID)
	return nil
}

// MockPlanGate is a mock implementation of PlanGate
type MockPlanGate struct {
	mock.Mock
}

func (m *MockPlanGate) CanCreateProperty(ctx context.Context, tenantID uuid.UUID, current int64) error {
	args := m.Called(ctx, tenantID, current)
	return args.Error(0)
}

// MockAttachmentPurger is a mock implementation of AttachmentPurger
type MockAttachmentPurger struct {
	mock.Mock
}

func (m *MockAttachmentPurger) PurgeProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	args := m.Called(ctx, tenantID, propertyID)
	return args.Error(0)
}

// =============================================================================
// Fixture
// =============================================================================

type serviceFixture struct {
	service       *PropertyService
	propertyRepo  *fakePropertyRepo
	statementRepo *fakeStatementRepo
	unitRepo      *fakeUnitRepo
	planGate      *MockPlanGate
	purger        *MockAttachmentPurger
	tenantID      uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	f := &serviceFixture{
		propertyRepo:  newFakePropertyRepo(),
		statementRepo: newFakeStatementRepo(),
		unitRepo:      newFakeUnitRepo(),
		planGate:      &MockPlanGate{},
		purger:        &MockAttachmentPurger{},
		tenantID:      uuid.New(),
	}
	f.service = NewPropertyService(f.propertyRepo, f.statementRepo, f.unitRepo, f.purger, f.planGate, zap.NewNop())
	return f
}

func (f *serviceFixture) allowCreation() {
	f.planGate.On("CanCreateProperty", mock.Anything, f.tenantID, mock.Anything).Return(nil)
}

func (f *serviceFixture) create(t *testing.T, name string) *PropertyResponse {
	t.Helper()

	unitCount := 4
	area := decimal.NewFromInt(4000)
	resp, err := f.service.Create(context.Background(), f.tenantID, CreatePropertyRequest{
		Name:              name,
		Type:              "multifamily",
		UnitCount:         &unitCount,
		GrossBuildingArea: &area,
	})
	require.NoError(t, err)
	return resp
}

// =============================================================================
// Tests
// =============================================================================

func TestCreateProvisionsStatement(t *testing.T) {
	f := newServiceFixture(t)
	f.allowCreation()

	resp := f.create(t, "Maple Court")

	st, err := f.statementRepo.GetByPropertyID(context.Background(), f.tenantID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, st.PropertyID)
	assert.Equal(t, statement.GrossScheduledRentID, st.Income.Order[0])
	assert.True(t, st.Metrics.UnitCount.Equal(decimal.NewFromInt(4)))
}

func TestCreateRejectedByPlanGate(t *testing.T) {
	f := newServiceFixture(t)
	limitErr := shared.NewDomainError("PLAN_LIMIT_EXCEEDED", "Plan limit reached")
	f.planGate.On("CanCreateProperty", mock.Anything, f.tenantID, mock.Anything).Return(limitErr)

	_, err := f.service.Create(context.Background(), f.tenantID, CreatePropertyRequest{
		Name: "One Too Many",
		Type: "office",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, limitErr)
	assert.Empty(t, f.propertyRepo.items)
}

func TestCreatePassesCurrentCountToGate(t *testing.T) {
	f := newServiceFixture(t)
	f.planGate.On("CanCreateProperty", mock.Anything, f.tenantID, int64(0)).Return(nil).Once()
	f.planGate.On("CanCreateProperty", mock.Anything, f.tenantID, int64(1)).Return(nil).Once()

	f.create(t, "First")
	f.create(t, "Second")

	f.planGate.AssertExpectations(t)
}

func TestUpdateMetricsSyncsStatementDivisors(t *testing.T) {
	f := newServiceFixture(t)
	f.allowCreation()
	resp := f.create(t, "Cedar Flats")
	ctx := context.Background()

	newCount := 8
	_, err := f.service.Update(ctx, f.tenantID, resp.ID, UpdatePropertyRequest{UnitCount: &newCount})
	require.NoError(t, err)

	st, err := f.statementRepo.GetByPropertyID(ctx, f.tenantID, resp.ID)
	require.NoError(t, err)
	assert.True(t, st.Metrics.UnitCount.Equal(decimal.NewFromInt(8)))
}

func TestUpdateWithoutMetricsLeavesStatementAlone(t *testing.T) {
	f := newServiceFixture(t)
	f.allowCreation()
	resp := f.create(t, "Old Name")
	ctx := context.Background()

	before, err := f.statementRepo.GetByPropertyID(ctx, f.tenantID, resp.ID)
	require.NoError(t, err)

	name := "New Name"
	updated, err := f.service.Update(ctx, f.tenantID, resp.ID, UpdatePropertyRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	after, err := f.statementRepo.GetByPropertyID(ctx, f.tenantID, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}

func TestUpdateRejectsNegativeMetrics(t *testing.T) {
	f := newServiceFixture(t)
	f.allowCreation()
	resp := f.create(t, "Birch Plaza")

	bad := decimal.NewFromInt(-100)
	_, err := f.service.Update(context.Background(), f.tenantID, resp.ID, UpdatePropertyRequest{GrossBuildingArea: &bad})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestDeleteCascades(t *testing.T) {
	f := newServiceFixture(t)
	f.allowCreation()
	resp := f.create(t, "Oak Terrace")
	ctx := context.Background()

	u, err := units.NewUnit(f.tenantID, resp.ID, "Unit 101", decimal.NewFromInt(1200))
	require.NoError(t, err)
	require.NoError(t, f.unitRepo.Create(ctx, u))

	f.purger.On("PurgeProperty", mock.Anything, f.tenantID, resp.ID).Return(nil)

	require.NoError(t, f.service.Delete(ctx, f.tenantID, resp.ID))

	_, err = f.service.Get(ctx, f.tenantID, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = f.statementRepo.GetByPropertyID(ctx, f.tenantID, resp.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	roll, err := f.unitRepo.ListByProperty(ctx, f.tenantID, resp.ID)
	require.NoError(t, err)
	assert.Empty(t, roll)
	f.purger.AssertExpectations(t)
}

func TestDeleteUnknownProperty(t *testing.T) {
	f := newServiceFixture(t)

	err := f.service.Delete(context.Background(), f.tenantID, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
	f.purger.AssertNotCalled(t, "PurgeProperty", mock.Anything, mock.Anything, mock.Anything)
}
