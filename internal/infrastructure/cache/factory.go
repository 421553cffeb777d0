package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/infrastructure/config"
)

// NewIdempotencyStore creates the idempotency store named by the
// configured backend. The redis backend requires a reachable server;
// there is no silent fallback, a misconfigured store would quietly
// re-apply retried mutations.
func NewIdempotencyStore(cfg config.IdempotencyConfig, redisCfg config.RedisConfig, logger *zap.Logger) (shared.IdempotencyStore, error) {
	switch cfg.Backend {
	case "redis":
		store, err := NewRedisIdempotencyStore(redisCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis idempotency store: %w", err)
		}
		logger.Info("using redis idempotency store", zap.String("addr", redisCfg.Addr()))
		return store, nil
	case "", "memory":
		logger.Info("using in-memory idempotency store")
		return NewInMemoryIdempotencyStore(), nil
	default:
		return nil, fmt.Errorf("unknown idempotency backend %q", cfg.Backend)
	}
}
