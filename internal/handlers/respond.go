package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"homegrid-backend/internal/remote"
	"homegrid-backend/internal/service"
)

// respondError maps service and transport errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMoveInProgress),
		errors.Is(err, service.ErrDuplicatePageName),
		errors.Is(err, service.ErrReservedSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrUnknownPage):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case remote.IsTransport(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
