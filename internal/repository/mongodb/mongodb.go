// Package mongodb implements the order, receipt, inventory and report stores
// on top of the official MongoDB driver, plus the session-scoped transaction
// runner the reconciliation engine requires.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ordersCollection    = "orders"
	receiptsCollection  = "receipts"
	inventoryCollection = "inventories"
	reportsCollection   = "weekly_reports"
)

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}
