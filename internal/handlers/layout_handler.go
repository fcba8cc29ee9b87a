package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/service"
)

type LayoutHandler struct {
	store    service.ConfigSource
	prefetch *service.PrefetchService
}

func NewLayoutHandler(store service.ConfigSource, prefetch *service.PrefetchService) *LayoutHandler {
	return &LayoutHandler{
		store:    store,
		prefetch: prefetch,
	}
}

// Resolve projects the item sequence for ?page_id= and ?device=. The
// response never waits on prefetching: cache warming runs in the
// background and only augments an already-rendered grid.
func (h *LayoutHandler) Resolve(c *gin.Context) {
	var pageID *string
	if raw, ok := c.GetQuery("page_id"); ok && raw != "" {
		pageID = &raw
	}
	device := models.ParseDevice(c.Query("device"))

	cfg := h.store.Cached()
	if cfg == nil {
		var err error
		cfg, err = h.store.Fetch(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}

	items, err := service.ResolveLayout(cfg, pageID, device)
	if err != nil {
		respondError(c, err)
		return
	}

	go h.prefetch.Prefetch(context.Background(), items)

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"device": device,
	})
}
