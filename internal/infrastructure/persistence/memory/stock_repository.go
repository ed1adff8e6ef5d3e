// Package memory provides in-memory persistence adapters, used in tests
// and single-process deployments.
package memory

import (
	"context"
	"sync"

	"github.com/despensa/v1/internal/domain/pantry"
	"github.com/despensa/v1/internal/ports/outbound"
	"github.com/google/uuid"
)

// StockRepository implements outbound.StockRepository with a mutex-guarded
// map. Items are cloned on the way in and out so callers can never alias
// stored state.
type StockRepository struct {
	mutex sync.RWMutex
	data  map[uuid.UUID]map[uuid.UUID]*pantry.StockItem
	order map[uuid.UUID][]uuid.UUID
}

// NewStockRepository creates a new in-memory stock repository.
func NewStockRepository() outbound.StockRepository {
	return &StockRepository{
		data:  make(map[uuid.UUID]map[uuid.UUID]*pantry.StockItem),
		order: make(map[uuid.UUID][]uuid.UUID),
	}
}

// FindByUser returns the user's stock in insertion order.
func (r *StockRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.StockItem, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	items := make([]*pantry.StockItem, 0, len(r.order[userID]))
	for _, id := range r.order[userID] {
		if item, ok := r.data[userID][id]; ok {
			items = append(items, item.Clone())
		}
	}
	return items, nil
}

// Save upserts a stock item.
func (r *StockRepository) Save(ctx context.Context, userID uuid.UUID, item *pantry.StockItem) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.data[userID] == nil {
		r.data[userID] = make(map[uuid.UUID]*pantry.StockItem)
	}
	if _, exists := r.data[userID][item.ID()]; !exists {
		r.order[userID] = append(r.order[userID], item.ID())
	}
	r.data[userID][item.ID()] = item.Clone()
	return nil
}

// Delete removes a stock item.
func (r *StockRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.data[userID][itemID]; !ok {
		return pantry.ErrItemNotFound
	}
	delete(r.data[userID], itemID)

	ids := r.order[userID]
	for i, id := range ids {
		if id == itemID {
			r.order[userID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}
