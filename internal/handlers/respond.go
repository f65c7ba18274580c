package handlers

import (
	"errors"
	"net/http"

	"headphone_store_server/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP status codes: unknown entities
// are 404, validation-class errors are 400, everything else is a 500.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	var dup *services.DuplicateNameError
	var invalid *services.InvalidNameError
	var neg *services.NegativePriceError
	var ref *services.ReferenceNotFoundError
	if errors.As(err, &dup) || errors.As(err, &invalid) || errors.As(err, &neg) || errors.As(err, &ref) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
