package receiving

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestComputeRemainingRowsFollowOrderSequence(t *testing.T) {
	a := line("First", "kg", 10, 2)
	b := line("Second", "pcs", 4, 1)
	order := &models.Order{
		Items: []models.OrderItem{a, b},
		ReceivedMap: map[string]float64{
			a.ItemID.Hex(): 2.5,
		},
	}

	rows := ComputeRemaining(order)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ItemID != a.ItemID || rows[1].ItemID != b.ItemID {
		t.Error("row order must follow the order's item sequence")
	}
	if rows[0].Received != 2.5 || rows[0].Remaining != 7.5 {
		t.Errorf("row 0 = %+v, want received 2.5 remaining 7.5", rows[0])
	}
	if rows[1].Received != 0 || rows[1].Remaining != 4 {
		t.Errorf("row 1 = %+v, want received 0 remaining 4", rows[1])
	}
}

func TestComputeRemainingFloorsAtZero(t *testing.T) {
	a := line("Overshot", "kg", 3, 1)
	order := &models.Order{
		Items:       []models.OrderItem{a},
		ReceivedMap: map[string]float64{a.ItemID.Hex(): 5},
	}

	rows := ComputeRemaining(order)
	if rows[0].Remaining != 0 {
		t.Errorf("remaining = %v, want floored to 0", rows[0].Remaining)
	}
}

func TestComputeRemainingRoundsDrift(t *testing.T) {
	a := line("Drifty", "kg", 0.3, 1)
	order := &models.Order{
		Items:       []models.OrderItem{a},
		ReceivedMap: map[string]float64{a.ItemID.Hex(): 0.1},
	}

	rows := ComputeRemaining(order)
	// 0.3 - 0.1 carries binary residue without fixed-precision rounding.
	if rows[0].Remaining != 0.2 {
		t.Errorf("remaining = %v, want exactly 0.2", rows[0].Remaining)
	}
}

func TestComputeRemainingIsPureAndIdempotent(t *testing.T) {
	a := line("Stable", "kg", 8, 3)
	order := &models.Order{
		Items:       []models.OrderItem{a},
		ReceivedMap: map[string]float64{a.ItemID.Hex(): 1.25},
	}

	first := ComputeRemaining(order)
	second := ComputeRemaining(order)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated calls must yield identical output")
	}
	if order.ReceivedMap[a.ItemID.Hex()] != 1.25 {
		t.Error("ledger must never be mutated by the projection")
	}
}

func TestComputeRemainingDefaultsMissingUnit(t *testing.T) {
	order := &models.Order{
		Items: []models.OrderItem{{ItemID: primitive.NewObjectID(), Name: "No Unit", Quantity: 2}},
	}

	rows := ComputeRemaining(order)
	if rows[0].Unit != "pcs" {
		t.Errorf("unit = %q, want default pcs", rows[0].Unit)
	}
}
