package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus enumerates the lifecycle of a purchase order.
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusPartial  OrderStatus = "partial"
	OrderStatusReceived OrderStatus = "received"
	OrderStatusCanceled OrderStatus = "canceled"
)

// Terminal reports whether the reconciliation path may still mutate an order
// in this status. Received and canceled orders are final.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusReceived || s == OrderStatusCanceled
}

// OrderItem is a single ordered line. Name, unit and price are snapshots taken
// at order time so later inventory edits do not rewrite history.
type OrderItem struct {
	ItemID    primitive.ObjectID `bson:"itemId" json:"itemId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Unit      string             `bson:"unit" json:"unit"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}

// Order is a purchase order placed with a supplier. ReceivedMap is the
// cumulative-received ledger, keyed by the hex form of the line's ItemID.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Supplier     string             `bson:"supplier" json:"supplier"`
	Items        []OrderItem        `bson:"items" json:"items"`
	Status       OrderStatus        `bson:"status" json:"status"`
	ExpectedDate *time.Time         `bson:"expectedDate,omitempty" json:"expectedDate,omitempty"`
	Notes        string             `bson:"notes" json:"notes"`
	ReceivedMap  map[string]float64 `bson:"receivedMap" json:"receivedMap"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Received returns the cumulative received quantity for the given line item.
func (o *Order) Received(itemID primitive.ObjectID) float64 {
	if o.ReceivedMap == nil {
		return 0
	}
	return o.ReceivedMap[itemID.Hex()]
}
