// Package pantry provides the application layer for pantry stock
// management. It implements the use cases defined in the inbound ports.
package pantry

import (
	"context"
	stderrors "errors"
	"sync"

	"github.com/despensa/v1/internal/domain/pantry"
	"github.com/despensa/v1/internal/domain/planner"
	"github.com/despensa/v1/internal/ports/inbound"
	"github.com/despensa/v1/internal/ports/outbound"
	"github.com/despensa/v1/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the pantry use cases. Reconciliations against the
// same user's pantry are serialized with a per-user lock; the domain
// core itself is a pure snapshot-in, snapshot-out computation.
type Service struct {
	repo       outbound.StockRepository
	reconciler *pantry.Reconciler
	logger     *zap.Logger

	mu        sync.Mutex
	userLocks map[uuid.UUID]*sync.Mutex
}

// NewService creates a new pantry service.
func NewService(repo outbound.StockRepository, logger *zap.Logger) inbound.PantryService {
	return &Service{
		repo:       repo,
		reconciler: pantry.NewReconciler(),
		logger:     logger.Named("pantry-service"),
		userLocks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

// AddItem adds a single item to the user's pantry, running it through
// the same reconciliation path as batch arrivals so that a repeat
// purchase tops up the existing entry.
func (s *Service) AddItem(ctx context.Context, cmd inbound.AddItemCommand) (*inbound.ReconcileResult, error) {
	item := toIncoming(cmd.Item)

	if cmd.DefaultExpiry && item.ExpiresAt == nil {
		expiry := s.reconciler.Now().Add(pantry.DefaultShelfLife(item.Category))
		item.ExpiresAt = &expiry
	}

	return s.reconcile(ctx, cmd.UserID, []pantry.IncomingItem{item})
}

// ReconcileBatch merges an incoming batch (scan result or completed
// shopping trip) into the user's pantry.
func (s *Service) ReconcileBatch(ctx context.Context, cmd inbound.ReconcileBatchCommand) (*inbound.ReconcileResult, error) {
	incoming := make([]pantry.IncomingItem, 0, len(cmd.Items))
	for _, it := range cmd.Items {
		incoming = append(incoming, toIncoming(it))
	}
	return s.reconcile(ctx, cmd.UserID, incoming)
}

func (s *Service) reconcile(ctx context.Context, userID uuid.UUID, incoming []pantry.IncomingItem) (*inbound.ReconcileResult, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	stock, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load stock", err)
	}

	outcome := s.reconciler.MergeBatch(stock, incoming)

	s.logger.Info("Reconciled incoming batch",
		zap.String("user_id", userID.String()),
		zap.Int("incoming", len(incoming)),
		zap.Int("created", outcome.Created),
		zap.Int("merged", outcome.Merged),
	)

	// Persistence is fire-and-forget by design: the returned snapshot is
	// the source of truth for the caller, and a failed write must not
	// undo a completed reconciliation.
	for _, item := range outcome.Stock {
		events := item.Events()
		if len(events) == 0 {
			continue
		}
		for _, event := range events {
			s.logger.Debug("Domain event", zap.String("event", event.EventName()))
		}
		if err := s.repo.Save(ctx, userID, item); err != nil {
			s.logger.Warn("Failed to persist stock item",
				zap.String("item_id", item.ID().String()),
				zap.Error(err),
			)
		}
	}

	result := &inbound.ReconcileResult{
		Stock:        toDTOs(outcome.Stock),
		Created:      outcome.Created,
		Merged:       outcome.Merged,
		ProteinAdded: outcome.ProteinAdded,
	}
	return result, nil
}

// ApplyConsumption depletes the user's pantry after cooking.
func (s *Service) ApplyConsumption(ctx context.Context, cmd inbound.ConsumeCommand) (*inbound.ConsumeResult, error) {
	unlock := s.lockUser(cmd.UserID)
	defer unlock()

	stock, err := s.repo.FindByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("load stock", err)
	}

	usage := make([]pantry.UsageRecord, 0, len(cmd.Usage))
	for _, u := range cmd.Usage {
		usage = append(usage, pantry.UsageRecord{Name: u.Name, Quantity: u.Quantity, Unit: u.Unit})
	}

	outcome := s.reconciler.Consume(stock, usage)

	s.logger.Info("Applied cooking consumption",
		zap.String("user_id", cmd.UserID.String()),
		zap.Int("usage_records", len(usage)),
		zap.Int("applied", outcome.Applied),
		zap.Int("removed", len(outcome.RemovedItems)),
		zap.Int("skipped", outcome.Skipped),
		zap.Int("incompatible", outcome.Incompatible),
	)

	for _, item := range outcome.Stock {
		if len(item.Events()) == 0 {
			continue
		}
		if err := s.repo.Save(ctx, cmd.UserID, item); err != nil {
			s.logger.Warn("Failed to persist stock item",
				zap.String("item_id", item.ID().String()),
				zap.Error(err),
			)
		}
	}
	for _, item := range outcome.RemovedItems {
		if err := s.repo.Delete(ctx, cmd.UserID, item.ID()); err != nil {
			s.logger.Warn("Failed to delete depleted stock item",
				zap.String("item_id", item.ID().String()),
				zap.Error(err),
			)
		}
	}

	result := &inbound.ConsumeResult{
		Stock:        toDTOs(outcome.Stock),
		Applied:      outcome.Applied,
		Removed:      len(outcome.RemovedItems),
		Skipped:      outcome.Skipped,
		Incompatible: outcome.Incompatible,
	}
	return result, nil
}

// RemoveItem deletes a stock item explicitly.
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error {
	unlock := s.lockUser(userID)
	defer unlock()

	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		if stderrors.Is(err, pantry.ErrItemNotFound) {
			return errors.NewStockItemNotFoundError(itemID.String())
		}
		return errors.NewDatabaseError("delete stock item", err)
	}
	return nil
}

// ListStock returns the user's current pantry snapshot.
func (s *Service) ListStock(ctx context.Context, userID uuid.UUID) ([]inbound.StockItemDTO, error) {
	stock, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("load stock", err)
	}
	return toDTOs(stock), nil
}

// ShoppingNeeds computes what remains to buy for the given plan demands
// after discounting current stock.
func (s *Service) ShoppingNeeds(ctx context.Context, cmd inbound.ShoppingNeedsCommand) ([]inbound.ShoppingNeedDTO, error) {
	stock, err := s.repo.FindByUser(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("load stock", err)
	}

	demands := make([]planner.Demand, 0, len(cmd.Demands))
	for _, d := range cmd.Demands {
		demands = append(demands, planner.Demand{
			Recipe:          d.Recipe,
			Ingredient:      d.Ingredient,
			Quantity:        d.Quantity,
			Unit:            d.Unit,
			Category:        pantry.ParseCategory(d.Category),
			RecipeServings:  d.RecipeServings,
			PlannedServings: d.PlannedServings,
		})
	}

	needs := planner.ShoppingNeeds(demands, stock)

	dtos := make([]inbound.ShoppingNeedDTO, 0, len(needs))
	for _, n := range needs {
		dtos = append(dtos, inbound.ShoppingNeedDTO{
			Name:          n.Name,
			Quantity:      n.Quantity,
			Unit:          n.Unit,
			Category:      string(n.Category),
			SourceRecipes: n.SourceRecipes,
		})
	}
	return dtos, nil
}

func (s *Service) lockUser(userID uuid.UUID) func() {
	s.mu.Lock()
	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func toIncoming(cmd inbound.IncomingItemCommand) pantry.IncomingItem {
	category := pantry.ParseCategory(cmd.Category)
	if cmd.Category == "" {
		// Scanned receipts rarely carry a category, predict one from
		// the item name.
		category, _ = pantry.SuggestCategory(cmd.Name)
	}
	return pantry.IncomingItem{
		Name:      cmd.Name,
		Quantity:  cmd.Quantity,
		Unit:      cmd.Unit,
		Category:  category,
		ExpiresAt: cmd.ExpiresAt,
	}
}

func toDTOs(stock []*pantry.StockItem) []inbound.StockItemDTO {
	dtos := make([]inbound.StockItemDTO, 0, len(stock))
	for _, item := range stock {
		dtos = append(dtos, inbound.StockItemDTO{
			ID:        item.ID(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			Unit:      item.Unit(),
			Category:  string(item.Category()),
			AddedAt:   item.AddedAt(),
			ExpiresAt: item.ExpiresAt(),
		})
	}
	return dtos
}
