// Package billing enforces subscription plan limits. Plans are carried in
// the access token; this backend only reads them, subscriptions are
// managed by the external billing system.
package billing

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	propertyapp "github.com/proforma/backend/internal/application/property"
	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/infrastructure/auth"
	"github.com/proforma/backend/internal/infrastructure/config"
)

type contextKey string

const planKey contextKey = "plan"

// WithPlan stores the caller's plan in the context. Set by the auth
// middleware from the token's plan claim.
func WithPlan(ctx context.Context, plan string) context.Context {
	return context.WithValue(ctx, planKey, plan)
}

// PlanFromContext reads the caller's plan, defaulting to the free plan
func PlanFromContext(ctx context.Context) string {
	if plan, ok := ctx.Value(planKey).(string); ok && plan != "" {
		return plan
	}
	return auth.PlanFree
}

var _ propertyapp.PlanGate = (*StaticPlanGate)(nil)

// StaticPlanGate enforces per-plan property limits from configuration
type StaticPlanGate struct {
	limits map[string]int
	logger *zap.Logger
}

// NewStaticPlanGate creates a plan gate with limits from billing config
func NewStaticPlanGate(cfg config.BillingConfig, logger *zap.Logger) *StaticPlanGate {
	return &StaticPlanGate{
		limits: map[string]int{
			auth.PlanFree: cfg.FreePlanPropertyLimit,
			auth.PlanPro:  cfg.ProPlanPropertyLimit,
		},
		logger: logger,
	}
}

// CanCreateProperty checks whether the tenant may add another property.
// Unknown plans fall back to the free limit.
func (g *StaticPlanGate) CanCreateProperty(ctx context.Context, tenantID uuid.UUID, current int64) error {
	plan := PlanFromContext(ctx)
	limit, ok := g.limits[plan]
	if !ok {
		limit = g.limits[auth.PlanFree]
	}
	if limit > 0 && current >= int64(limit) {
		g.logger.Info("property limit reached",
			zap.String("tenant_id", tenantID.String()),
			zap.String("plan", plan),
			zap.Int64("current", current),
			zap.Int("limit", limit))
		return shared.ErrPlanLimitExceeded
	}
	return nil
}
