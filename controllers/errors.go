package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Andyflow28/SolTech-RESTAPI/apperr"
)

// respondError maps a typed error to its status code and a machine-readable
// body. Known errors never collapse into a 500; only unexpected persistence
// failures reach the generic path, and those are logged rather than leaked.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *apperr.ValidationError
	var aerr *apperr.AuthError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation_error",
			"detail": verr.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": "conflict", "detail": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "detail": err.Error()})
	case errors.As(err, &aerr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": string(aerr.Kind), "detail": aerr.Error()})
	default:
		logger.Error("unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":  "internal_error",
			"detail": "unexpected server error",
		})
	}
}
