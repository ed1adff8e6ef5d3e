package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/despensa/v1/internal/domain/pantry"
	"github.com/despensa/v1/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// StockRepository implements outbound.StockRepository using PostgreSQL.
type StockRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewStockRepository creates a new PostgreSQL stock repository.
func NewStockRepository(db *pgxpool.Pool, logger *zap.Logger) outbound.StockRepository {
	return &StockRepository{
		db:     db,
		logger: logger,
	}
}

// FindByUser retrieves a user's full stock snapshot in stocking order.
func (r *StockRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.StockItem, error) {
	query := `SELECT id, name, quantity, unit, category, added_at, expires_at
	          FROM stock_items WHERE user_id = $1 ORDER BY added_at, id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("Failed to load stock",
			zap.String("user_id", userID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	defer rows.Close()

	var items []*pantry.StockItem
	for rows.Next() {
		var (
			id        uuid.UUID
			name      string
			quantity  float64
			unit      string
			category  string
			addedAt   time.Time
			expiresAt *time.Time
		)
		if err := rows.Scan(&id, &name, &quantity, &unit, &category, &addedAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, pantry.RehydrateStockItem(
			id, name, quantity, unit, pantry.ParseCategory(category), addedAt, expiresAt,
		))
	}
	return items, rows.Err()
}

// Save upserts a stock item.
func (r *StockRepository) Save(ctx context.Context, userID uuid.UUID, item *pantry.StockItem) error {
	query := `INSERT INTO stock_items (id, user_id, name, quantity, unit, category, added_at, expires_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (id) DO UPDATE SET
	            name = EXCLUDED.name,
	            quantity = EXCLUDED.quantity,
	            unit = EXCLUDED.unit,
	            category = EXCLUDED.category,
	            added_at = EXCLUDED.added_at,
	            expires_at = EXCLUDED.expires_at`

	_, err := r.db.Exec(ctx, query,
		item.ID(), userID, item.Name(), item.Quantity(), item.Unit(),
		string(item.Category()), item.AddedAt(), item.ExpiresAt(),
	)
	if err != nil {
		r.logger.Error("Failed to save stock item",
			zap.String("item_id", item.ID().String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// Delete removes a stock item.
func (r *StockRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	query := `DELETE FROM stock_items WHERE user_id = $1 AND id = $2`

	tag, err := r.db.Exec(ctx, query, userID, itemID)
	if err != nil {
		r.logger.Error("Failed to delete stock item",
			zap.String("item_id", itemID.String()),
			zap.Error(err),
		)
		return err
	}
	if tag.RowsAffected() == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}
