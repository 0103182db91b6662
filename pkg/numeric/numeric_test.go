package numeric

import (
	"math"
	"testing"
)

func TestCoerce(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  float64
		want float64
	}{
		{"float64", 1.5, 0, 1.5},
		{"int", 7, 0, 7},
		{"string", "2.25", 0, 2.25},
		{"bad string", "two", 9, 9},
		{"nil", nil, 3, 3},
		{"nan", math.NaN(), 4, 4},
		{"inf", math.Inf(1), 5, 5},
		{"bool", true, 6, 6},
	}
	for _, tc := range cases {
		if got := Coerce(tc.in, tc.def); got != tc.want {
			t.Errorf("%s: Coerce(%v, %v) = %v, want %v", tc.name, tc.in, tc.def, got, tc.want)
		}
	}
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in     float64
		places int
		want   float64
	}{
		{2.3456, 3, 2.346},
		{2.0005, 3, 2.001},
		{-2.0005, 3, -2.001},
		{0.1 + 0.2, 3, 0.3},
		{10.0000000001, 3, 10},
		{math.NaN(), 3, 0},
		{math.Inf(-1), 3, 0},
	}
	for _, tc := range cases {
		if got := Round(tc.in, tc.places); got != tc.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tc.in, tc.places, got, tc.want)
		}
	}
}

func TestRepeatedAccumulationHasNoResidue(t *testing.T) {
	// Ten receipts of 0.1 kg each must land on exactly 1.0 in the ledger.
	var ledger float64
	for i := 0; i < 10; i++ {
		ledger = RoundQty(ledger + 0.1)
	}
	if ledger != 1.0 {
		t.Errorf("ledger = %v, want exactly 1.0", ledger)
	}
}

func TestIsWhole(t *testing.T) {
	if !IsWhole(4) || IsWhole(4.5) || IsWhole(math.NaN()) {
		t.Error("IsWhole misclassified an input")
	}
}
