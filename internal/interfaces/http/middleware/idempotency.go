package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/shared"
	"github.com/proforma/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader is the header carrying the client's idempotency key
const IdempotencyKeyHeader = "Idempotency-Key"

// maxIdempotencyKeyLength bounds key length against abusive headers
const maxIdempotencyKeyLength = 128

// Idempotency returns a middleware that rejects replays of mutating requests.
// Clients that send an Idempotency-Key on POST/PUT/PATCH/DELETE get exactly
// one application of that request per key within the store's TTL; a replay is
// answered with 409. Requests without the header pass through untouched.
//
// The key is marked before the handler runs, so a request that fails midway
// still consumes its key. Clients must retry with a fresh key after an error
// response.
func Idempotency(store shared.IdempotencyStore, cfg shared.IdempotencyConfig, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled || !isMutating(c.Request.Method) {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest,
				dto.NewErrorResponse(dto.ErrCodeBadRequest, "Idempotency key is too long"))
			return
		}

		// Scope the key to the tenant so keys cannot collide across tenants.
		scopedKey := key
		if tenantID := GetTenantID(c); tenantID != "" {
			scopedKey = tenantID + ":" + key
		}

		fresh, err := store.MarkProcessed(c.Request.Context(), scopedKey, cfg.TTL)
		if err != nil {
			if log != nil {
				log.Error("Idempotency check failed", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrCodeInternal, "Unable to verify idempotency key"))
			return
		}
		if !fresh {
			c.AbortWithStatusJSON(http.StatusConflict,
				dto.NewErrorResponse(dto.ErrCodeDuplicateRequest, "Request with this idempotency key was already processed"))
			return
		}

		c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
