package pantry

import (
	"errors"
	"time"

	"github.com/despensa/v1/internal/domain/measure"
)

// Reconciler folds incoming item batches and cooking usage into a stock
// snapshot. It is a pure computation over its inputs: the caller hands
// it a consistent snapshot and receives a new one, and is responsible
// for persisting the result and for serializing concurrent batches
// against the same pantry.
type Reconciler struct {
	now func() time.Time
}

// NewReconciler returns a reconciler using the wall clock.
func NewReconciler() *Reconciler {
	return &Reconciler{now: time.Now}
}

// NewReconcilerWithClock returns a reconciler with an injected clock.
func NewReconcilerWithClock(now func() time.Time) *Reconciler {
	return &Reconciler{now: now}
}

// Now returns the reconciler's current time.
func (r *Reconciler) Now() time.Time {
	return r.now()
}

// MergeOutcome is the result of folding an incoming batch into stock.
type MergeOutcome struct {
	Stock   []*StockItem
	Created int
	Merged  int

	// ProteinAdded carries the display name of the last meat or fish
	// item seen in the batch, for the "look up recipes?" nudge. Empty
	// when the batch had none.
	ProteinAdded string
}

// ConsumeOutcome is the result of applying cooking usage to stock.
type ConsumeOutcome struct {
	Stock        []*StockItem
	Applied      int
	Skipped      int
	Incompatible int

	// RemovedItems holds items drained to the depletion epsilon; they
	// are no longer part of Stock and need deleting from persistence.
	RemovedItems []*StockItem
}

// MergeBatch matches each incoming item against stock by normalized
// name, in input order, and merges quantities into the first match or
// creates a new item when none exists. Items merged or created earlier
// in the batch are themselves matchable by later incoming items. The
// input snapshot is never mutated.
func (r *Reconciler) MergeBatch(stock []*StockItem, incoming []IncomingItem) MergeOutcome {
	outcome := MergeOutcome{Stock: cloneStock(stock)}
	now := r.now()

	for _, in := range incoming {
		if in.Category.IsProtein() {
			// Later proteins overwrite earlier ones; one nudge per batch.
			outcome.ProteinAdded = in.Name
		}

		key := in.NormalizedName()
		matched := false
		for _, item := range outcome.Stock {
			if item.MatchesKey(key) {
				item.Merge(in, now)
				outcome.Merged++
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		item, err := NewStockItem(in, now)
		if err != nil {
			// Malformed entries degrade silently; the rest of the batch
			// still lands.
			continue
		}
		outcome.Stock = append(outcome.Stock, item)
		outcome.Created++
	}

	return outcome
}

// Consume applies usage records to stock in input order. Each record
// depletes the first matching item; items drained to the depletion
// epsilon are removed entirely. Records with no matching stock or with
// irreconcilable units are skipped without interrupting the batch.
func (r *Reconciler) Consume(stock []*StockItem, usage []UsageRecord) ConsumeOutcome {
	outcome := ConsumeOutcome{Stock: cloneStock(stock)}
	now := r.now()

	for _, used := range usage {
		key := used.NormalizedName()

		idx := -1
		for i, item := range outcome.Stock {
			if item.MatchesKey(key) {
				idx = i
				break
			}
		}
		if idx < 0 {
			outcome.Skipped++
			continue
		}

		depleted, err := outcome.Stock[idx].Consume(used.Quantity, used.UnitOrDefault(), now)
		if errors.Is(err, measure.ErrIncompatibleUnits) {
			outcome.Incompatible++
			continue
		}

		outcome.Applied++
		if depleted {
			outcome.RemovedItems = append(outcome.RemovedItems, outcome.Stock[idx])
			outcome.Stock = append(outcome.Stock[:idx], outcome.Stock[idx+1:]...)
		}
	}

	return outcome
}

func cloneStock(stock []*StockItem) []*StockItem {
	cloned := make([]*StockItem, len(stock))
	for i, item := range stock {
		cloned[i] = item.Clone()
	}
	return cloned
}
