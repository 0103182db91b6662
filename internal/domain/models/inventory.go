package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem is a stocked good. Quantity is mutated only through atomic
// increments issued by receipt reconciliation (or reversal), never by
// read-modify-write inside the engine.
type InventoryItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Category  string             `bson:"category" json:"category"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Unit      string             `bson:"unit" json:"unit"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
