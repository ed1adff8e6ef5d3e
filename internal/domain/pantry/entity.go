// Package pantry contains the core domain logic for pantry stock:
// the StockItem aggregate and the reconciliation of incoming purchases
// and cooking usage against current stock.
package pantry

import (
	"time"

	"github.com/despensa/v1/internal/domain/measure"
	"github.com/despensa/v1/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// expiryEpsilon is the remaining quantity below which existing stock
	// is treated as an empty slot being topped up: its old expiry date is
	// considered stale and the fresher incoming one wins.
	expiryEpsilon = 0.2

	// DepletionEpsilon is the quantity at or below which a consumed item
	// is removed outright instead of lingering at a near-zero amount.
	DepletionEpsilon = 0.05
)

// StockItem is a pantry entry: the persisted ground truth of what the
// household has. The normalized name is a derived matching key, never
// the item's identity; two items with different display names may merge
// if their keys match.
type StockItem struct {
	shared.AggregateRoot

	id        uuid.UUID
	name      string
	quantity  float64
	unit      string
	category  Category
	addedAt   time.Time
	expiresAt *time.Time
}

// NewStockItem promotes an incoming item to a new pantry entry.
func NewStockItem(incoming IncomingItem, now time.Time) (*StockItem, error) {
	if err := incoming.Validate(); err != nil {
		return nil, err
	}

	item := &StockItem{
		id:        uuid.New(),
		name:      incoming.Name,
		quantity:  incoming.Quantity,
		unit:      incoming.Unit,
		category:  incoming.Category,
		addedAt:   now,
		expiresAt: incoming.ExpiresAt,
	}

	item.AddEvent(StockItemAddedEvent{
		ItemID:   item.id,
		Name:     item.name,
		Category: item.category,
		AddedAt:  now,
	})

	return item, nil
}

// RehydrateStockItem rebuilds an entity from persisted state without
// raising events.
func RehydrateStockItem(id uuid.UUID, name string, quantity float64, unit string, category Category, addedAt time.Time, expiresAt *time.Time) *StockItem {
	return &StockItem{
		id:        id,
		name:      name,
		quantity:  quantity,
		unit:      unit,
		category:  category,
		addedAt:   addedAt,
		expiresAt: expiresAt,
	}
}

// ID returns the item's identifier.
func (s *StockItem) ID() uuid.UUID { return s.id }

// Name returns the display name as the user entered it.
func (s *StockItem) Name() string { return s.name }

// Quantity returns the displayed quantity.
func (s *StockItem) Quantity() float64 { return s.quantity }

// Unit returns the displayed unit.
func (s *StockItem) Unit() string { return s.unit }

// Category returns the item's shelf section.
func (s *StockItem) Category() Category { return s.category }

// AddedAt returns when the item was last stocked.
func (s *StockItem) AddedAt() time.Time { return s.addedAt }

// ExpiresAt returns the expiry timestamp, if any.
func (s *StockItem) ExpiresAt() *time.Time { return s.expiresAt }

// NormalizedName returns the derived matching key.
func (s *StockItem) NormalizedName() string {
	return measure.NormalizeName(s.name)
}

// MatchesKey reports whether the item refers to the same ingredient as
// the given normalized key.
func (s *StockItem) MatchesKey(key string) bool {
	return measure.SameItem(s.NormalizedName(), key)
}

// Merge folds an incoming quantity into this item. Quantities combine
// through unit arithmetic (with its density and numeric fallbacks), the
// expiry tie-break picks the soonest date while meaningful stock
// remains and the freshest one when topping up an empty slot, and the
// stocked-at timestamp refreshes to reflect the restock.
func (s *StockItem) Merge(incoming IncomingItem, now time.Time) {
	merged := measure.Add(s.quantity, s.unit, incoming.Quantity, incoming.Unit)

	existingMs := expiryMillis(s.expiresAt)
	incomingMs := expiryMillis(incoming.ExpiresAt)

	finalMs := incomingMs
	if existingMs > 0 && s.quantity > expiryEpsilon {
		// Old stock with meaningful quantity likely expires first.
		finalMs = min(existingMs, incomingMs)
	} else if existingMs > 0 {
		finalMs = max(existingMs, incomingMs)
	}

	s.quantity = merged.Value
	s.unit = merged.Unit
	s.expiresAt = millisToExpiry(finalMs)
	s.addedAt = now

	s.AddEvent(StockMergedEvent{
		ItemID:   s.id,
		Name:     s.name,
		Quantity: s.quantity,
		Unit:     s.unit,
		MergedAt: now,
	})
}

// Consume subtracts a used amount from the item. Returns true when the
// remainder sits at or below the depletion epsilon and the item should
// be removed from stock. Returns measure.ErrIncompatibleUnits when the
// usage cannot be reconciled with the stocked unit, leaving the item
// untouched.
func (s *StockItem) Consume(quantity float64, unit string, now time.Time) (bool, error) {
	remaining, err := measure.Subtract(s.quantity, s.unit, quantity, unit)
	if err != nil {
		return false, err
	}

	s.quantity = remaining.Value
	s.unit = remaining.Unit
	depleted := s.quantity <= DepletionEpsilon

	s.AddEvent(StockConsumedEvent{
		ItemID:     s.id,
		Name:       s.name,
		Remaining:  s.quantity,
		Unit:       s.unit,
		Depleted:   depleted,
		ConsumedAt: now,
	})

	return depleted, nil
}

// Clone returns a copy of the item without pending events. The
// reconciler works on clones so the caller's snapshot stays intact.
func (s *StockItem) Clone() *StockItem {
	clone := *s
	clone.AggregateRoot = shared.AggregateRoot{}
	if s.expiresAt != nil {
		t := *s.expiresAt
		clone.expiresAt = &t
	}
	return &clone
}

// Expiry dates compare as Unix milliseconds with zero meaning "no
// expiry", mirroring how absent dates behave in the tie-break: a merge
// of dated stock above the epsilon with an undated purchase clears the
// date (min with zero), while a topped-up empty slot keeps whichever
// date exists (max with zero).
func expiryMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func millisToExpiry(ms int64) *time.Time {
	if ms <= 0 {
		return nil
	}
	t := time.UnixMilli(ms).UTC()
	return &t
}
