package pantry

import (
	"time"

	"github.com/despensa/v1/internal/domain/measure"
)

// IncomingItem is a quantity arriving at the pantry from a manual add,
// a purchase-ticket scan or a completed shopping trip. It is never
// persisted as-is: reconciliation either merges it into an existing
// StockItem or promotes it to a new one.
type IncomingItem struct {
	Name      string
	Quantity  float64
	Unit      string
	Category  Category
	ExpiresAt *time.Time
}

// Validate checks the minimal shape constraints for an incoming item.
func (i IncomingItem) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}
	if i.Quantity < 0 {
		return ErrNegativeQuantity
	}
	return nil
}

// NormalizedName returns the matching key for this item.
func (i IncomingItem) NormalizedName() string {
	return measure.NormalizeName(i.Name)
}

// UsageRecord is one ingredient amount consumed while cooking a recipe.
type UsageRecord struct {
	Name     string
	Quantity float64
	Unit     string
}

// UnitOrDefault returns the record's unit, falling back to the generic
// count unit when the recipe did not specify one.
func (u UsageRecord) UnitOrDefault() string {
	if u.Unit == "" {
		return measure.CountUnit
	}
	return u.Unit
}

// NormalizedName returns the matching key for this record.
func (u UsageRecord) NormalizedName() string {
	return measure.NormalizeName(u.Name)
}
