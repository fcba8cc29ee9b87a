package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/service"
)

type PrefetchHandler struct {
	store    service.ConfigSource
	prefetch *service.PrefetchService
}

func NewPrefetchHandler(store service.ConfigSource, prefetch *service.PrefetchService) *PrefetchHandler {
	return &PrefetchHandler{
		store:    store,
		prefetch: prefetch,
	}
}

// Prefetch resolves the requested scope and returns the warmed icon and
// widget-data maps for it.
func (h *PrefetchHandler) Prefetch(c *gin.Context) {
	var req models.PrefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := h.store.Cached()
	if cfg == nil {
		var err error
		cfg, err = h.store.Fetch(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}

	items, err := service.ResolveLayout(cfg, req.PageID, models.ParseDevice(req.Device))
	if err != nil {
		respondError(c, err)
		return
	}

	result := h.prefetch.Prefetch(c.Request.Context(), items)

	c.JSON(http.StatusOK, gin.H{
		"icons":       result.Icons,
		"widget_data": result.WidgetData,
	})
}
