// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"

	"github.com/despensa/v1/internal/domain/pantry"
	"github.com/google/uuid"
)

// StockRepository defines the interface for pantry persistence. The
// reconciliation core never touches it; the application layer loads a
// snapshot, reconciles, and writes the result back through here.
type StockRepository interface {
	// FindByUser returns the user's full stock snapshot.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.StockItem, error)

	// Save upserts a single stock item.
	Save(ctx context.Context, userID uuid.UUID, item *pantry.StockItem) error

	// Delete removes a stock item. Returns pantry.ErrItemNotFound when
	// the item does not exist.
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
}
