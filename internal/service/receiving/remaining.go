package receiving

import (
	"math"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/pkg/numeric"
)

// defaultUnit is assumed when an order line carries no unit symbol.
const defaultUnit = "pcs"

// ComputeRemaining projects an order's line items and its cumulative-received
// ledger into a per-line remaining table. It is pure: the order is never
// mutated, and row order follows the order's item sequence. Both request
// validation and status derivation read from this single projection.
func ComputeRemaining(order *models.Order) []models.RemainingLine {
	rows := make([]models.RemainingLine, 0, len(order.Items))
	for _, it := range order.Items {
		ordered := numeric.Coerce(it.Quantity, 0)
		received := numeric.Coerce(order.Received(it.ItemID), 0)

		unit := it.Unit
		if unit == "" {
			unit = defaultUnit
		}

		rows = append(rows, models.RemainingLine{
			ItemID:    it.ItemID,
			Name:      it.Name,
			Unit:      unit,
			UnitPrice: numeric.Coerce(it.UnitPrice, 0),
			Ordered:   ordered,
			Received:  received,
			Remaining: math.Max(numeric.RoundQty(ordered-received), 0),
		})
	}
	return rows
}
