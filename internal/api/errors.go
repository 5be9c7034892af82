package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/lifetrack/internal/logger"
	"github.com/julianstephens/lifetrack/internal/models"
	"github.com/julianstephens/lifetrack/internal/protection"
	"github.com/julianstephens/lifetrack/internal/store"
)

// respondError maps store errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var (
		verr    *models.ValidationError
		blocked *protection.BlockedError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "entity": verr.Entity, "field": verr.Field})
	case errors.As(err, &blocked):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "reason": blocked.Reason})
	case errors.Is(err, protection.ErrWrongPIN):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.Error("API request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
