package reporting

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

type reportStoreStub struct {
	upserted []*models.WeeklyReceivingReport
}

func (s *reportStoreStub) Upsert(_ context.Context, report *models.WeeklyReceivingReport) error {
	s.upserted = append(s.upserted, report)
	return nil
}

func (s *reportStoreStub) ListRecent(_ context.Context, limit int64) ([]models.WeeklyReceivingReport, error) {
	var out []models.WeeklyReceivingReport
	for i := len(s.upserted) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		out = append(out, *s.upserted[i])
	}
	return out, nil
}

func seedReceipt(t *testing.T, store *memory.Store, receivedAt time.Time, items ...models.ReceiptItem) {
	t.Helper()
	r := &models.Receipt{Items: items, ReceivedAt: receivedAt, CreatedAt: receivedAt, UpdatedAt: receivedAt}
	if err := store.Receipts().Insert(context.Background(), r); err != nil {
		t.Fatalf("seed receipt: %v", err)
	}
}

func TestGenerateWeeklyAggregatesOneISOWeek(t *testing.T) {
	store := memory.NewStore()
	reports := &reportStoreStub{}
	svc := NewService(store.Receipts(), reports, nil, nil)

	// Wednesday 2026-08-19 falls in ISO week 34 (Mon 17th - Sun 23rd).
	inWeek := time.Date(2026, 8, 19, 14, 0, 0, 0, time.UTC)
	seedReceipt(t, store, inWeek,
		models.ReceiptItem{ItemID: primitive.NewObjectID(), Name: "Beans", Unit: "kg", Quantity: 4.5},
		models.ReceiptItem{ItemID: primitive.NewObjectID(), Name: "Cups", Unit: "pcs", Quantity: 40},
	)
	seedReceipt(t, store, inWeek.AddDate(0, 0, 2),
		models.ReceiptItem{ItemID: primitive.NewObjectID(), Name: "Beans", Unit: "kg", Quantity: 5.5},
	)
	// The Monday after is outside the window.
	seedReceipt(t, store, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		models.ReceiptItem{ItemID: primitive.NewObjectID(), Name: "Milk", Unit: "l", Quantity: 2},
	)

	report, err := svc.GenerateWeekly(context.Background(), inWeek)
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}

	if report.Week != "2026-W34" {
		t.Errorf("week = %q, want 2026-W34", report.Week)
	}
	if !report.WeekStart.Equal(time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v, want Monday the 17th", report.WeekStart)
	}
	if report.ReceiptCount != 2 || report.LineCount != 3 {
		t.Errorf("counts = %d receipts / %d lines, want 2/3", report.ReceiptCount, report.LineCount)
	}
	if report.QuantityByUnit["kg"] != 10.0 {
		t.Errorf("kg total = %v, want exactly 10.0", report.QuantityByUnit["kg"])
	}
	if report.QuantityByUnit["pcs"] != 40 {
		t.Errorf("pcs total = %v, want 40", report.QuantityByUnit["pcs"])
	}
	if _, ok := report.QuantityByUnit["l"]; ok {
		t.Error("next week's receipt leaked into the aggregate")
	}

	if len(reports.upserted) != 1 {
		t.Fatalf("expected one upserted report, got %d", len(reports.upserted))
	}
}

func TestGenerateWeeklyEmptyWeek(t *testing.T) {
	store := memory.NewStore()
	reports := &reportStoreStub{}
	svc := NewService(store.Receipts(), reports, nil, nil)

	report, err := svc.GenerateWeekly(context.Background(), time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("GenerateWeekly failed: %v", err)
	}
	if report.ReceiptCount != 0 || report.LineCount != 0 || len(report.QuantityByUnit) != 0 {
		t.Errorf("empty week should produce a zero report, got %+v", report)
	}
}

func TestStartOfISOWeekSundayBelongsToPrecedingMonday(t *testing.T) {
	sunday := time.Date(2026, 8, 23, 23, 59, 0, 0, time.UTC)
	got := startOfISOWeek(sunday)
	want := time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("startOfISOWeek(sunday) = %v, want %v", got, want)
	}
}
