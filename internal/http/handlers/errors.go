package handlers

import (
	"log"
	"net/http"

	"ferryops/internal/domain"
	"ferryops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Validation errors
// carry a field-scoped errors map; internals never leak their cause.
func RespondDomainError(c *gin.Context, err error) {
	reqID := middleware.GetRequestID(c)
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success":    false,
			"message":    err.Error(),
			"errors":     domain.FieldErrors(err),
			"request_id": reqID,
		})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{
			"success":    false,
			"message":    err.Error(),
			"request_id": reqID,
		})
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{
			"success":    false,
			"message":    err.Error(),
			"request_id": reqID,
		})
	default:
		log.Printf("[ERROR] request_id=%s err=%v", reqID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"message":    "terjadi kesalahan pada server",
			"request_id": reqID,
		})
	}
}
