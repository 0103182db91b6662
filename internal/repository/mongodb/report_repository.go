package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// ReportRepository persists weekly receiving reports.
type ReportRepository struct {
	coll *mongo.Collection
}

// NewReportRepository builds a report repository over the given database.
func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{coll: db.Collection(reportsCollection)}
}

// Upsert stores the report keyed by its ISO week, replacing any earlier run
// for the same week.
func (r *ReportRepository) Upsert(ctx context.Context, report *models.WeeklyReceivingReport) error {
	filter := bson.M{"week": report.Week}
	update := bson.M{"$set": bson.M{
		"week":           report.Week,
		"weekStart":      report.WeekStart,
		"receiptCount":   report.ReceiptCount,
		"lineCount":      report.LineCount,
		"quantityByUnit": report.QuantityByUnit,
		"generatedAt":    report.GeneratedAt,
	}}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert weekly report: %w", err)
	}
	return nil
}

// ListRecent returns the latest reports, newest week first.
func (r *ReportRepository) ListRecent(ctx context.Context, limit int64) ([]models.WeeklyReceivingReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weekStart", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.WeeklyReceivingReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode weekly reports: %w", err)
	}
	return reports, nil
}
