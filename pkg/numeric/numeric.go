// Package numeric centralizes quantity and price arithmetic so that repeated
// partial receipts cannot accumulate floating-point drift in the ledger.
package numeric

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// QuantityPlaces is the fixed precision applied to quantities, prices and the
// cumulative-received ledger.
const QuantityPlaces = 3

// Coerce converts v to a float64, falling back to def when the value is
// missing, unparsable or not finite. It never fails.
func Coerce(v any, def float64) float64 {
	var n float64
	switch t := v.(type) {
	case nil:
		return def
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint:
		n = float64(t)
	case uint32:
		n = float64(t)
	case uint64:
		n = float64(t)
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return def
		}
		n = parsed
	default:
		return def
	}
	if !IsFinite(n) {
		return def
	}
	return n
}

// Round rounds half away from zero to the given number of decimal places.
// Non-finite input rounds to 0.
func Round(v float64, places int) float64 {
	if !IsFinite(v) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(v).Round(int32(places)).Float64()
	return rounded
}

// RoundQty rounds a quantity or price to the ledger precision.
func RoundQty(v float64) float64 {
	return Round(v, QuantityPlaces)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsWhole reports whether v is a whole number. Quantities in discrete units
// must satisfy this exactly; they are rejected rather than rounded.
func IsWhole(v float64) bool {
	return IsFinite(v) && v == math.Trunc(v)
}
