// Package meta serves unit and category metadata and classifies units as
// discrete (integer-only) or fractional. The lookup is swappable at runtime so
// it can later be fed from an external source instead of static configuration.
package meta

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Default returns the metadata used when no override is configured.
func Default() models.Meta {
	return models.Meta{
		Units:        []string{"pcs", "pack", "kg", "g", "l", "ml"},
		IntegerUnits: []string{"pcs", "pack", "ea", "bag"},
		Categories: []string{
			"Soft Drinks & Water",
			"Cleaning & Hygiene",
			"Equipment Supplies",
			"Coffee",
			"Tea",
		},
	}
}

// Service is the runtime metadata lookup.
type Service struct {
	mu      sync.RWMutex
	current models.Meta
	integer map[string]struct{}
	logger  *zap.Logger
}

// NewService builds a metadata service seeded with the given lists.
func NewService(initial models.Meta, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{logger: logger}
	s.Replace(initial)
	return s
}

// Current returns a copy of the active metadata.
func (s *Service) Current() models.Meta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Meta{
		Units:        append([]string(nil), s.current.Units...),
		IntegerUnits: append([]string(nil), s.current.IntegerUnits...),
		Categories:   append([]string(nil), s.current.Categories...),
	}
}

// Replace swaps the active metadata wholesale.
func (s *Service) Replace(m models.Meta) {
	integer := make(map[string]struct{}, len(m.IntegerUnits))
	for _, u := range m.IntegerUnits {
		u = strings.ToLower(strings.TrimSpace(u))
		if u != "" {
			integer[u] = struct{}{}
		}
	}

	s.mu.Lock()
	s.current = m
	s.integer = integer
	s.mu.Unlock()

	s.logger.Debug("metadata replaced",
		zap.Int("units", len(m.Units)),
		zap.Int("integer_units", len(integer)),
		zap.Int("categories", len(m.Categories)))
}

// IsIntegerUnit reports whether quantities in the given unit must be whole
// numbers. The match is case-insensitive; unknown units are treated as
// fractional-allowed.
func (s *Service) IsIntegerUnit(unit string) bool {
	key := strings.ToLower(strings.TrimSpace(unit))

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.integer[key]
	return ok
}
