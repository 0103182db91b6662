// Package storage holds sentinel errors shared by every persistence adapter
// so services can branch on outcomes without knowing which store they talk to.
package storage

import "errors"

// ErrNotFound is returned when a document with the requested id does not exist.
var ErrNotFound = errors.New("document not found")
