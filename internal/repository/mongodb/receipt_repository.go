package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/storage"
)

// ReceiptRepository persists receipt documents. Receipts are append-only;
// the only mutation is deletion, used by the reversal path.
type ReceiptRepository struct {
	coll *mongo.Collection
}

// NewReceiptRepository builds a receipt repository over the given database.
func NewReceiptRepository(db *mongo.Database) *ReceiptRepository {
	return &ReceiptRepository{coll: db.Collection(receiptsCollection)}
}

// Insert stores a new receipt, assigning an id when absent.
func (r *ReceiptRepository) Insert(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID.IsZero() {
		receipt.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, receipt); err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

// FindByID loads one receipt by id.
func (r *ReceiptRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&receipt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find receipt: %w", err)
	}
	return &receipt, nil
}

// List returns all receipts, most recently received first.
func (r *ReceiptRepository) List(ctx context.Context) ([]models.Receipt, error) {
	sort := bson.D{{Key: "receivedAt", Value: -1}, {Key: "createdAt", Value: -1}}
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer cursor.Close(ctx)

	var receipts []models.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, fmt.Errorf("failed to decode receipts: %w", err)
	}
	return receipts, nil
}

// ListBetween returns receipts with receivedAt in [from, to), newest first.
func (r *ReceiptRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.Receipt, error) {
	filter := bson.M{"receivedAt": bson.M{"$gte": from, "$lt": to}}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "receivedAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts between %s and %s: %w", from, to, err)
	}
	defer cursor.Close(ctx)

	var receipts []models.Receipt
	if err := cursor.All(ctx, &receipts); err != nil {
		return nil, fmt.Errorf("failed to decode receipts: %w", err)
	}
	return receipts, nil
}

// Delete removes a receipt document.
func (r *ReceiptRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
