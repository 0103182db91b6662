package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/meta"
)

// MetaHandler serves the unit/category metadata routes.
type MetaHandler struct {
	svc    *meta.Service
	logger *zap.Logger
}

// NewMetaHandler constructs the metadata HTTP adapter.
func NewMetaHandler(svc *meta.Service, logger *zap.Logger) *MetaHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetaHandler{svc: svc, logger: logger}
}

// Get handles GET /api/meta.
func (h *MetaHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current())
}

// Units handles GET /api/meta/units.
func (h *MetaHandler) Units(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current().Units)
}

// Categories handles GET /api/meta/categories.
func (h *MetaHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current().Categories)
}

// Replace handles PUT /api/meta, swapping the runtime lookup wholesale.
func (h *MetaHandler) Replace(c *gin.Context) {
	var payload models.Meta
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid metadata payload"})
		return
	}
	if len(payload.Units) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "units must not be empty"})
		return
	}

	h.svc.Replace(payload)
	h.logger.Info("metadata replaced via api")
	c.JSON(http.StatusOK, h.svc.Current())
}
