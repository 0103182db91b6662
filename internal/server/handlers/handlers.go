// Package handlers adapts the goods-management services to HTTP. Handlers
// stay thin: bind, delegate, translate errors to status codes.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/service/receiving"
	"github.com/mamadbah2/stockroom/internal/storage"
)

// parseObjectID validates a path or payload id and writes a 400 on failure.
func parseObjectID(c *gin.Context, raw, field string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + field})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondReceivingError maps the engine's error taxonomy onto HTTP statuses:
// not-found → 404, nothing-remaining and cancellation conflicts → 409, the
// validation family → 400, everything else → 500.
func respondReceivingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, receiving.ErrOrderNotFound),
		errors.Is(err, receiving.ErrReceiptNotFound),
		errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, receiving.ErrNothingRemaining),
		errors.Is(err, receiving.ErrOrderCanceled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, receiving.ErrItemNotInOrder),
		errors.Is(err, receiving.ErrInvalidQuantity),
		errors.Is(err, receiving.ErrQuantityExceedsRemaining),
		errors.Is(err, receiving.ErrInvalidIntegerQuantity),
		errors.Is(err, receiving.ErrInvalidItem),
		errors.Is(err, receiving.ErrNoItems):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
