package pantry

import (
	"time"

	"github.com/google/uuid"
)

// Domain events raised by stock item mutations.

// StockItemAddedEvent is raised when a new item enters the pantry.
type StockItemAddedEvent struct {
	ItemID   uuid.UUID
	Name     string
	Category Category
	AddedAt  time.Time
}

func (e StockItemAddedEvent) EventName() string     { return "pantry.stock_item_added" }
func (e StockItemAddedEvent) OccurredAt() time.Time { return e.AddedAt }

// StockMergedEvent is raised when an incoming item is folded into
// existing stock.
type StockMergedEvent struct {
	ItemID   uuid.UUID
	Name     string
	Quantity float64
	Unit     string
	MergedAt time.Time
}

func (e StockMergedEvent) EventName() string     { return "pantry.stock_merged" }
func (e StockMergedEvent) OccurredAt() time.Time { return e.MergedAt }

// StockConsumedEvent is raised when cooking depletes part of an item.
type StockConsumedEvent struct {
	ItemID     uuid.UUID
	Name       string
	Remaining  float64
	Unit       string
	Depleted   bool
	ConsumedAt time.Time
}

func (e StockConsumedEvent) EventName() string     { return "pantry.stock_consumed" }
func (e StockConsumedEvent) OccurredAt() time.Time { return e.ConsumedAt }
