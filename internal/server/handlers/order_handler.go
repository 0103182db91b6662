package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
	"github.com/mamadbah2/stockroom/internal/storage"
	"github.com/mamadbah2/stockroom/pkg/numeric"
)

// OrderStore is the order persistence the handler needs.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	List(ctx context.Context, statuses []models.OrderStatus) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Reconciler is the slice of the receiving engine used by order routes.
type Reconciler interface {
	Remaining(ctx context.Context, orderID primitive.ObjectID) ([]models.RemainingLine, error)
	Reconcile(ctx context.Context, req receiving.ReceiveRequest) (*models.Receipt, error)
}

// OrderHandler serves the purchase-order routes.
type OrderHandler struct {
	orders OrderStore
	engine Reconciler
	logger *zap.Logger
}

// NewOrderHandler constructs the order HTTP adapter.
func NewOrderHandler(orders OrderStore, engine Reconciler, logger *zap.Logger) *OrderHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderHandler{orders: orders, engine: engine, logger: logger}
}

type orderItemPayload struct {
	ItemID    string  `json:"itemId" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required,gte=1"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unitPrice" binding:"gte=0"`
}

type createOrderPayload struct {
	Supplier     string             `json:"supplier" binding:"required"`
	Items        []orderItemPayload `json:"items" binding:"required,min=1,dive"`
	ExpectedDate *time.Time         `json:"expectedDate"`
	Notes        string             `json:"notes"`
}

func buildOrderItems(c *gin.Context, payload []orderItemPayload) ([]models.OrderItem, bool) {
	items := make([]models.OrderItem, 0, len(payload))
	for _, p := range payload {
		id, ok := parseObjectID(c, p.ItemID, "item id")
		if !ok {
			return nil, false
		}
		unit := strings.TrimSpace(p.Unit)
		if unit == "" {
			unit = "pcs"
		}
		items = append(items, models.OrderItem{
			ItemID:    id,
			Name:      strings.TrimSpace(p.Name),
			Quantity:  p.Quantity,
			Unit:      unit,
			UnitPrice: numeric.RoundQty(p.UnitPrice),
		})
	}
	return items, true
}

// Create handles POST /api/order.
func (h *OrderHandler) Create(c *gin.Context) {
	var payload createOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	items, ok := buildOrderItems(c, payload.Items)
	if !ok {
		return
	}

	now := time.Now()
	order := &models.Order{
		Supplier:     strings.TrimSpace(payload.Supplier),
		Items:        items,
		Status:       models.OrderStatusPending,
		ExpectedDate: payload.ExpectedDate,
		Notes:        payload.Notes,
		ReceivedMap:  map[string]float64{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.orders.Insert(c.Request.Context(), order); err != nil {
		h.logger.Error("failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// List handles GET /api/order with an optional ?status=a,b filter.
func (h *OrderHandler) List(c *gin.Context) {
	var statuses []models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			statuses = append(statuses, models.OrderStatus(strings.TrimSpace(s)))
		}
	}

	orders, err := h.orders.List(c.Request.Context(), statuses)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/order/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type updateOrderPayload struct {
	Supplier     *string            `json:"supplier"`
	Items        []orderItemPayload `json:"items" binding:"omitempty,min=1,dive"`
	ExpectedDate *time.Time         `json:"expectedDate"`
	Notes        *string            `json:"notes"`
}

// Update handles PUT /api/order/:id for the basic fields; status changes go
// through UpdateStatus.
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	var payload updateOrderPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order payload"})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	if order.Status.Terminal() && payload.Items != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot edit items of a received or canceled order"})
		return
	}

	if payload.Supplier != nil {
		order.Supplier = strings.TrimSpace(*payload.Supplier)
	}
	if payload.Items != nil {
		items, ok := buildOrderItems(c, payload.Items)
		if !ok {
			return
		}
		order.Items = items
	}
	if payload.ExpectedDate != nil {
		order.ExpectedDate = payload.ExpectedDate
	}
	if payload.Notes != nil {
		order.Notes = *payload.Notes
	}
	order.UpdatedAt = time.Now()

	if err := h.orders.Update(c.Request.Context(), order); err != nil {
		h.logger.Error("failed to update order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type statusPayload struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/order/:id/status. Received is terminal:
// it cannot be left again through this route.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	var payload statusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status payload"})
		return
	}
	switch payload.Status {
	case models.OrderStatusPending, models.OrderStatusCanceled, models.OrderStatusReceived:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Error("failed to fetch order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	if order.Status == models.OrderStatusReceived && payload.Status != models.OrderStatusReceived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot change status after received"})
		return
	}

	order.Status = payload.Status
	order.UpdatedAt = time.Now()
	if err := h.orders.Update(c.Request.Context(), order); err != nil {
		h.logger.Error("failed to update status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// Delete handles DELETE /api/order/:id.
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.logger.Error("failed to delete order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

// Remaining handles GET /api/order/:id/remaining.
func (h *OrderHandler) Remaining(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	rows, err := h.engine.Remaining(c.Request.Context(), id)
	if err != nil {
		respondReceivingError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type receiveLinePayload struct {
	ItemID    string   `json:"itemId" binding:"required"`
	Quantity  *float64 `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice"`
}

type receivePayload struct {
	Items      []receiveLinePayload `json:"items"`
	Notes      string               `json:"notes"`
	ReceivedAt *time.Time           `json:"receivedAt"`
}

// Receive handles POST /api/order/:id/receipt: create a receipt for the
// provided lines, or for everything still remaining when no lines are given.
func (h *OrderHandler) Receive(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "order id")
	if !ok {
		return
	}

	var payload receivePayload
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt payload"})
		return
	}

	req := receiving.ReceiveRequest{
		OrderID:    id,
		Notes:      payload.Notes,
		ReceivedAt: payload.ReceivedAt,
	}
	for _, p := range payload.Items {
		itemID, ok := parseObjectID(c, p.ItemID, "item id")
		if !ok {
			return
		}
		req.Items = append(req.Items, receiving.RequestedLine{
			ItemID:    itemID,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
		})
	}

	receipt, err := h.engine.Reconcile(c.Request.Context(), req)
	if err != nil {
		respondReceivingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}
