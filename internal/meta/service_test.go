package meta

import (
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

func TestIsIntegerUnit(t *testing.T) {
	svc := NewService(Default(), nil)

	cases := []struct {
		unit string
		want bool
	}{
		{"pcs", true},
		{"PCS", true},
		{" Pack ", true},
		{"ea", true},
		{"bag", true},
		{"kg", false},
		{"ml", false},
		{"", false},
		{"crate", false}, // unknown units default to fractional-allowed
	}
	for _, tc := range cases {
		if got := svc.IsIntegerUnit(tc.unit); got != tc.want {
			t.Errorf("IsIntegerUnit(%q) = %v, want %v", tc.unit, got, tc.want)
		}
	}
}

func TestReplaceSwapsLookupAtRuntime(t *testing.T) {
	svc := NewService(Default(), nil)

	svc.Replace(models.Meta{
		Units:        []string{"crate", "kg"},
		IntegerUnits: []string{"crate"},
		Categories:   []string{"Produce"},
	})

	if !svc.IsIntegerUnit("CRATE") {
		t.Error("crate should be integer-only after replace")
	}
	if svc.IsIntegerUnit("pcs") {
		t.Error("pcs should no longer be integer-only after replace")
	}
	if got := svc.Current(); len(got.Units) != 2 || got.Categories[0] != "Produce" {
		t.Errorf("Current() = %+v, want replaced metadata", got)
	}
}

func TestCurrentReturnsACopy(t *testing.T) {
	svc := NewService(Default(), nil)

	snapshot := svc.Current()
	snapshot.IntegerUnits[0] = "kg"

	if svc.IsIntegerUnit("kg") {
		t.Error("mutating the returned copy must not affect the service")
	}
}
