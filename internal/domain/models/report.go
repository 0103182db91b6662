package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeeklyReceivingReport aggregates receiving activity for one ISO week. It
// backs the weekly receiving chart and the scheduled report job.
type WeeklyReceivingReport struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Week           string             `bson:"week" json:"week"` // e.g. "2026-W35"
	WeekStart      time.Time          `bson:"weekStart" json:"weekStart"`
	ReceiptCount   int                `bson:"receiptCount" json:"receiptCount"`
	LineCount      int                `bson:"lineCount" json:"lineCount"`
	QuantityByUnit map[string]float64 `bson:"quantityByUnit" json:"quantityByUnit"`
	GeneratedAt    time.Time          `bson:"generatedAt" json:"generatedAt"`
}
