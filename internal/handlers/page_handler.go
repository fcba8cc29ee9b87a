package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/service"
)

type PageHandler struct {
	pages *service.PageService
}

func NewPageHandler(pages *service.PageService) *PageHandler {
	return &PageHandler{pages: pages}
}

func (h *PageHandler) Create(c *gin.Context) {
	var req models.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pages.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"page": page})
}

func (h *PageHandler) Rename(c *gin.Context) {
	var req models.RenamePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.pages.Rename(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

func (h *PageHandler) Delete(c *gin.Context) {
	if err := h.pages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "page deleted successfully"})
}

func (h *PageHandler) List(c *gin.Context) {
	pages, err := h.pages.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pages": pages})
}
