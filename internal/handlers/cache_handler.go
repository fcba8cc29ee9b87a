package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/service"
	"homegrid-backend/pkg/cache"
	"homegrid-backend/pkg/logger"
)

// ClearCache flushes the prefetch caches and, when configured, the warm
// Redis copy of the config document. This is the explicit reload the
// process-lifetime caches wait for.
func ClearCache(prefetch *service.PrefetchService, warm *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		prefetch.Invalidate()

		if warm != nil {
			if err := warm.InvalidateConfig(); err != nil {
				logger.Warn("Failed to invalidate warm config cache", map[string]interface{}{"error": err.Error()})
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "caches cleared"})
	}
}
