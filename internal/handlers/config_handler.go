package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/store"
)

type ConfigHandler struct {
	store *store.Store
}

func NewConfigHandler(configStore *store.Store) *ConfigHandler {
	return &ConfigHandler{store: configStore}
}

// Get returns the current document. By default it reads through to the
// document store; ?cached=true serves the local copy when one exists.
func (h *ConfigHandler) Get(c *gin.Context) {
	if c.Query("cached") == "true" {
		if cfg := h.store.Cached(); cfg != nil {
			c.JSON(http.StatusOK, gin.H{"config": cfg})
			return
		}
	}

	cfg, err := h.store.Fetch(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": cfg})
}

func (h *ConfigHandler) Save(c *gin.Context) {
	var patch models.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Save(c.Request.Context(), patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"config": h.store.Cached()})
}

func (h *ConfigHandler) Import(c *gin.Context) {
	var req models.ImportConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Import(c.Request.Context(), req.Config); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "config imported successfully"})
}
