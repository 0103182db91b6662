package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/service/receiving"
	"github.com/mamadbah2/stockroom/internal/storage"
)

// ReceiptStore is the read side of receipt persistence.
type ReceiptStore interface {
	List(ctx context.Context) ([]models.Receipt, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Receipt, error)
}

// ReceiptService is the slice of the receiving engine used by receipt routes.
type ReceiptService interface {
	Reconcile(ctx context.Context, req receiving.ReceiveRequest) (*models.Receipt, error)
	CreateStandalone(ctx context.Context, req receiving.StandaloneRequest) (*models.Receipt, error)
	DeleteReceipt(ctx context.Context, id primitive.ObjectID) error
}

// ReceiptHandler serves the receipt routes.
type ReceiptHandler struct {
	receipts ReceiptStore
	svc      ReceiptService
	logger   *zap.Logger
}

// NewReceiptHandler constructs the receipt HTTP adapter.
func NewReceiptHandler(receipts ReceiptStore, svc ReceiptService, logger *zap.Logger) *ReceiptHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptHandler{receipts: receipts, svc: svc, logger: logger}
}

// List handles GET /api/receipt, latest first.
func (h *ReceiptHandler) List(c *gin.Context) {
	receipts, err := h.receipts.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list receipts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch receipts"})
		return
	}
	c.JSON(http.StatusOK, receipts)
}

// Get handles GET /api/receipt/:id.
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "receipt id")
	if !ok {
		return
	}

	receipt, err := h.receipts.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "receipt not found"})
			return
		}
		h.logger.Error("failed to fetch receipt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch receipt"})
		return
	}
	c.JSON(http.StatusOK, receipt)
}

type standaloneLinePayload struct {
	ItemID    string   `json:"itemId" binding:"required"`
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      string   `json:"unit"`
	UnitPrice *float64 `json:"unitPrice"`
}

type createReceiptPayload struct {
	OrderID    string                  `json:"orderId"`
	Items      []standaloneLinePayload `json:"items"`
	Notes      string                  `json:"notes"`
	ReceivedAt *time.Time              `json:"receivedAt"`
}

// Create handles POST /api/receipt. With an orderId the receipt goes through
// the reconciliation engine; without one it becomes a standalone receipt.
func (h *ReceiptHandler) Create(c *gin.Context) {
	var payload createReceiptPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receipt payload"})
		return
	}

	if payload.OrderID != "" {
		orderID, ok := parseObjectID(c, payload.OrderID, "order id")
		if !ok {
			return
		}
		req := receiving.ReceiveRequest{
			OrderID:    orderID,
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

		receipt, err := h.svc.Reconcile(c.Request.Context(), req)
		if err != nil {
			respondReceivingError(c, err)
			return
		}
		c.JSON(http.StatusCreated, receipt)
		return
	}

	req := receiving.StandaloneRequest{
		Notes:      payload.Notes,
		ReceivedAt: payload.ReceivedAt,
	}
	for _, p := range payload.Items {
		itemID, ok := parseObjectID(c, p.ItemID, "item id")
		if !ok {
			return
		}
		var qty, price float64
		if p.Quantity != nil {
			qty = *p.Quantity
		}
		if p.UnitPrice != nil {
			price = *p.UnitPrice
		}
		req.Items = append(req.Items, receiving.StandaloneLine{
			ItemID:    itemID,
			Name:      p.Name,
			Quantity:  qty,
			Unit:      p.Unit,
			UnitPrice: price,
		})
	}

	receipt, err := h.svc.CreateStandalone(c.Request.Context(), req)
	if err != nil {
		respondReceivingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

// Delete handles DELETE /api/receipt/:id, reverting the inventory increments.
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"), "receipt id")
	if !ok {
		return
	}

	if err := h.svc.DeleteReceipt(c.Request.Context(), id); err != nil {
		respondReceivingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "receipt deleted and inventory reverted"})
}
