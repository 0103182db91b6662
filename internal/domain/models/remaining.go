package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// RemainingLine is one row of the remaining-quantity projection for an order:
// what was ordered, what the ledger says arrived, and what is still due.
type RemainingLine struct {
	ItemID    primitive.ObjectID `json:"itemId"`
	Name      string             `json:"name"`
	Unit      string             `json:"unit"`
	UnitPrice float64            `json:"unitPrice"`
	Ordered   float64            `json:"ordered"`
	Received  float64            `json:"received"`
	Remaining float64            `json:"remaining"`
}
