package billing

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/infrastructure/auth"
	"github.com/proforma/backend/internal/infrastructure/config"
)

func newGate() *StaticPlanGate {
	return NewStaticPlanGate(config.BillingConfig{
		FreePlanPropertyLimit: 3,
		ProPlanPropertyLimit:  100,
	}, zap.NewNop())
}

func TestPlanFromContext(t *testing.T) {
	assert.Equal(t, auth.PlanFree, PlanFromContext(context.Background()))
	assert.Equal(t, auth.PlanPro, PlanFromContext(WithPlan(context.Background(), auth.PlanPro)))
	assert.Equal(t, auth.PlanFree, PlanFromContext(WithPlan(context.Background(), "")))
}

func TestCanCreateProperty(t *testing.T) {
	gate := newGate()
	tenantID := uuid.New()

	t.Run("free plan under limit", func(t *testing.T) {
		assert.NoError(t, gate.CanCreateProperty(context.Background(), tenantID, 2))
	})

	t.Run("free plan at limit", func(t *testing.T) {
		err := gate.CanCreateProperty(context.Background(), tenantID, 3)
		assert.ErrorIs(t, err, shared.ErrPlanLimitExceeded)
	})

	t.Run("pro plan allows more", func(t *testing.T) {
		ctx := WithPlan(context.Background(), auth.PlanPro)
		assert.NoError(t, gate.CanCreateProperty(ctx, tenantID, 50))
		assert.ErrorIs(t, gate.CanCreateProperty(ctx, tenantID, 100), shared.ErrPlanLimitExceeded)
	})

	t.Run("unknown plan uses free limit", func(t *testing.T) {
		ctx := WithPlan(context.Background(), "enterprise")
		assert.ErrorIs(t, gate.CanCreateProperty(ctx, tenantID, 3), shared.ErrPlanLimitExceeded)
	})

	t.Run("zero limit disables the gate", func(t *testing.T) {
		open := NewStaticPlanGate(config.BillingConfig{}, zap.NewNop())
		assert.NoError(t, open.CanCreateProperty(context.Background(), tenantID, 1000))
	})
}
