package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avsytem/receitas-backend/internal/service"
	"github.com/avsytem/receitas-backend/internal/store"
)

// writeError translates persistence and service errors into HTTP responses.
// Internal details are logged, never leaked to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "value already in use"})
	case errors.Is(err, store.ErrConstraint):
		c.JSON(http.StatusConflict, gin.H{"error": "operation violates a data constraint"})
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "recipe belongs to another user"})
	case errors.Is(err, store.ErrUnavailable):
		log.Printf("Error: database unavailable: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
	default:
		log.Printf("Error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
