package models

// Meta is the unit/category metadata surfaced to clients and used by the unit
// classifier. It is an external lookup that may be swapped at runtime.
type Meta struct {
	Units        []string `json:"units"`
	IntegerUnits []string `json:"integerUnits"`
	Categories   []string `json:"categories"`
}
