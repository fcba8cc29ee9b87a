package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/models"
	"homegrid-backend/internal/service"
)

type ItemHandler struct {
	relocation *service.RelocationService
}

func NewItemHandler(relocation *service.RelocationService) *ItemHandler {
	return &ItemHandler{relocation: relocation}
}

// Move relocates one item between page scopes. A concurrent relocation is
// rejected with 409; the UI is expected to disable the action while one is
// in flight rather than queue.
func (h *ItemHandler) Move(c *gin.Context) {
	var req models.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.relocation.MoveItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
