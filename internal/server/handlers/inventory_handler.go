package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/storage"
	"github.com/mamadbah2/stockroom/pkg/numeric"
)

// InventoryStore is the inventory persistence the handler needs.
type InventoryStore interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error)
	Insert(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, item *models.InventoryItem) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// InventoryHandler serves the stock item routes.
type InventoryHandler struct {
	items  InventoryStore
	logger *zap.Logger
}

// NewInventoryHandler constructs the inventory HTTP adapter.
func NewInventoryHandler(items InventoryStore, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{items: items, logger: logger}
}

// List handles GET /api/inventory, most recently updated first.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.items.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch inventory items"})
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/inventory/:id.
func (h *InventoryHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "item id")
	if !ok {
		return
	}

	item, err := h.items.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.logger.Error("failed to fetch inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

type createItemPayload struct {
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	Quantity *float64 `json:"quantity" binding:"required"`
	Unit     string   `json:"unit" binding:"required"`
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(c *gin.Context) {
	var payload createItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory data"})
		return
	}

	qty := numeric.Coerce(*payload.Quantity, -1)
	if qty < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be zero or greater"})
		return
	}

	category := strings.TrimSpace(payload.Category)
	if category == "" {
		category = "Uncategorized"
	}

	now := time.Now()
	item := &models.InventoryItem{
		Name:      strings.TrimSpace(payload.Name),
		Category:  category,
		Quantity:  numeric.RoundQty(qty),
		Unit:      strings.TrimSpace(payload.Unit),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.items.Insert(c.Request.Context(), item); err != nil {
		h.logger.Error("failed to create inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateItemPayload struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// Update handles PUT /api/inventory/:id. Manual quantity corrections are
// allowed but must stay non-negative; receiving is the normal mutation path.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "item id")
	if !ok {
		return
	}

	var payload updateItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid inventory data"})
		return
	}

	item, err := h.items.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.logger.Error("failed to fetch inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}

	if payload.Name != nil {
		item.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Category != nil {
		item.Category = strings.TrimSpace(*payload.Category)
	}
	if payload.Quantity != nil {
		qty := numeric.Coerce(*payload.Quantity, -1)
		if qty < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be zero or greater"})
			return
		}
		item.Quantity = numeric.RoundQty(qty)
	}
	if payload.Unit != nil {
		item.Unit = strings.TrimSpace(*payload.Unit)
	}
	item.UpdatedAt = time.Now()

	if err := h.items.Update(c.Request.Context(), item); err != nil {
		h.logger.Error("failed to update inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/:id.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "item id")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		h.logger.Error("failed to delete inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
