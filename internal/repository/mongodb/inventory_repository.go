package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/storage"
)

// InventoryRepository persists stocked goods.
type InventoryRepository struct {
	coll *mongo.Collection
}

// NewInventoryRepository builds an inventory repository over the given database.
func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{coll: db.Collection(inventoryCollection)}
}

// Insert stores a new inventory item, assigning an id when absent.
func (r *InventoryRepository) Insert(ctx context.Context, item *models.InventoryItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return nil
}

// FindByID loads one inventory item by id.
func (r *InventoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return &item, nil
}

// List returns inventory items, most recently updated first.
func (r *InventoryRepository) List(ctx context.Context) ([]models.InventoryItem, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.InventoryItem
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory: %w", err)
	}
	return items, nil
}

// Update replaces the full inventory document.
func (r *InventoryRepository) Update(ctx context.Context, item *models.InventoryItem) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// IncrementQuantity atomically adjusts the stocked quantity by delta via $inc.
// This is the only inventory write the reconciliation engine performs; being
// a server-side increment it is commutative and safe under concurrency.
func (r *InventoryRepository) IncrementQuantity(ctx context.Context, id primitive.ObjectID, delta float64) error {
	update := bson.M{
		"$inc":         bson.M{"quantity": delta},
		"$currentDate": bson.M{"updatedAt": true},
	}
	res, err := r.coll.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to increment inventory quantity: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// Delete removes an inventory document.
func (r *InventoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
