package v1

import (
	"net/http"
	"time"

	"walletwatch/api/internal/domain"
	"walletwatch/api/internal/infra/cache"

	"github.com/gin-gonic/gin"
)

const (
	API_KEY_HEADER    = "X-API-Key"
	CTX_API_KEY       = "api_key"
	RATE_LIMIT_WINDOW = time.Hour
)

// returns true if the ip made more than limit requests in the current window
func rateLimitExceeded(limits *cache.Cache, ip string, limit int) bool {
	return limits.Incr("ip:"+ip, RATE_LIMIT_WINDOW) > int64(limit)
}

func (h *Handler) rateLimitMiddleware() gin.HandlerFunc {
	limit := h.config.Api.RateLimitPerHour

	return func(c *gin.Context) {
		if limit > 0 && rateLimitExceeded(h.limits, c.ClientIP(), limit) {
			responseErr(c, http.StatusTooManyRequests, domain.ErrMsgRateLimitExceeded, "")
			return
		}
		c.Next()
	}
}

func (h *Handler) apiKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(API_KEY_HEADER)
		if key == "" {
			responseErr(c, http.StatusUnauthorized, domain.ErrMsgApiKeyRequired, "")
			return
		}

		apiKey, err := h.services.ApiKeys.Authenticate(c.Request.Context(), key)
		if err != nil {
			h.responseServiceErr(c, err)
			return
		}

		c.Set(CTX_API_KEY, apiKey)
		c.Next()
	}
}
