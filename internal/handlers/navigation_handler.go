package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/service"
)

type NavigationHandler struct {
	navigation *service.NavigationService
}

func NewNavigationHandler(navigation *service.NavigationService) *NavigationHandler {
	return &NavigationHandler{navigation: navigation}
}

// Resolve maps a location path onto a page identity. Unknown slugs come
// back as a redirect-to-home resolution, not an error.
func (h *NavigationHandler) Resolve(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		path = "/"
	}

	resolution, err := h.navigation.ResolvePath(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolution": resolution})
}

// Switch maps a page identity onto its canonical path.
func (h *NavigationHandler) Switch(c *gin.Context) {
	var req models.SwitchPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resolution, err := h.navigation.SwitchTo(c.Request.Context(), req.PageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"resolution": resolution})
}
