// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PantryService defines the use cases for pantry stock management.
// This is the primary port that HTTP handlers and other driving
// adapters will use.
type PantryService interface {
	// Commands - operations that modify state
	AddItem(ctx context.Context, cmd AddItemCommand) (*ReconcileResult, error)
	ReconcileBatch(ctx context.Context, cmd ReconcileBatchCommand) (*ReconcileResult, error)
	ApplyConsumption(ctx context.Context, cmd ConsumeCommand) (*ConsumeResult, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error

	// Queries - operations that read state
	ListStock(ctx context.Context, userID uuid.UUID) ([]StockItemDTO, error)
	ShoppingNeeds(ctx context.Context, cmd ShoppingNeedsCommand) ([]ShoppingNeedDTO, error)
}

// IncomingItemCommand is one item of an incoming batch: a manual add, a
// purchase-scan extraction or a completed-shopping-trip line.
type IncomingItemCommand struct {
	Name      string
	Quantity  float64
	Unit      string
	Category  string
	ExpiresAt *time.Time
}

// AddItemCommand adds a single item to a user's pantry.
type AddItemCommand struct {
	UserID uuid.UUID
	Item   IncomingItemCommand

	// DefaultExpiry fills a missing expiry from the category's default
	// shelf life.
	DefaultExpiry bool
}

// ReconcileBatchCommand merges an incoming batch into a user's pantry.
type ReconcileBatchCommand struct {
	UserID uuid.UUID
	Items  []IncomingItemCommand
}

// UsageRecordCommand is one ingredient amount used while cooking.
type UsageRecordCommand struct {
	Name     string
	Quantity float64
	Unit     string
}

// ConsumeCommand depletes a user's pantry after cooking a recipe.
type ConsumeCommand struct {
	UserID uuid.UUID
	Usage  []UsageRecordCommand
}

// DemandCommand is one planned-recipe ingredient requirement.
type DemandCommand struct {
	Recipe          string
	Ingredient      string
	Quantity        float64
	Unit            string
	Category        string
	RecipeServings  int
	PlannedServings int
}

// ShoppingNeedsCommand computes what is left to buy for a meal plan.
type ShoppingNeedsCommand struct {
	UserID  uuid.UUID
	Demands []DemandCommand
}

// StockItemDTO is the outward representation of a pantry entry.
type StockItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	Category  string     `json:"category"`
	AddedAt   time.Time  `json:"added_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ReconcileResult reports the outcome of a merge batch.
type ReconcileResult struct {
	Stock   []StockItemDTO `json:"stock"`
	Created int            `json:"created"`
	Merged  int            `json:"merged"`

	// ProteinAdded names the last meat or fish item of the batch, for
	// the UI's recipe suggestion nudge. Empty when none.
	ProteinAdded string `json:"protein_added,omitempty"`
}

// ConsumeResult reports the outcome of applying usage records.
type ConsumeResult struct {
	Stock        []StockItemDTO `json:"stock"`
	Applied      int            `json:"applied"`
	Removed      int            `json:"removed"`
	Skipped      int            `json:"skipped"`
	Incompatible int            `json:"incompatible"`
}

// ShoppingNeedDTO is one aggregated, pantry-discounted requirement.
type ShoppingNeedDTO struct {
	Name          string   `json:"name"`
	Quantity      float64  `json:"quantity"`
	Unit          string   `json:"unit"`
	Category      string   `json:"category"`
	SourceRecipes []string `json:"source_recipes"`
}
