package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReceiptItem is one received line. As with order lines, name and unit are
// snapshots, here copied from the order row rather than from caller input.
type ReceiptItem struct {
	ItemID    primitive.ObjectID `bson:"itemId" json:"itemId"`
	Name      string             `bson:"name" json:"name"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Unit      string             `bson:"unit" json:"unit"`
	UnitPrice float64            `bson:"unitPrice" json:"unitPrice"`
}

// Receipt records goods actually received. OrderID is nil for standalone
// receipts that are not linked to any purchase order. Receipts are immutable
// once created; reversal happens by deleting the document and decrementing
// inventory.
type Receipt struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID    *primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Items      []ReceiptItem       `bson:"items" json:"items"`
	ReceivedAt time.Time           `bson:"receivedAt" json:"receivedAt"`
	Notes      string              `bson:"notes" json:"notes"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
