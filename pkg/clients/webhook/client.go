// Package webhook posts application events to an external endpoint, such as a
// chat integration or an automation pipeline listening for stock updates.
package webhook

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client delivers events over HTTP. Delivery is best effort: the business
// operation has already committed when an event fires, so failures are only
// logged.
type Client struct {
	httpClient *resty.Client
	url        string
	logger     *zap.Logger
}

// NewClient builds a webhook client for the given endpoint URL.
func NewClient(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2)

	return &Client{
		httpClient: restyClient,
		url:        url,
		logger:     logger,
	}
}

type event struct {
	Event      string    `json:"event"`
	OrderID    string    `json:"orderId"`
	Supplier   string    `json:"supplier"`
	OccurredAt time.Time `json:"occurredAt"`
}

// OrderReceived announces that an order has been fully received.
func (c *Client) OrderReceived(ctx context.Context, orderID, supplier string) {
	payload := event{
		Event:      "order.received",
		OrderID:    orderID,
		Supplier:   supplier,
		OccurredAt: time.Now().UTC(),
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.url)
	if err != nil {
		c.logger.Warn("webhook delivery failed", zap.String("order_id", orderID), zap.Error(err))
		return
	}
	if resp.IsError() {
		c.logger.Warn("webhook endpoint rejected event",
			zap.String("order_id", orderID),
			zap.Int("status", resp.StatusCode()))
		return
	}

	c.logger.Debug("webhook delivered", zap.String("order_id", orderID))
}
