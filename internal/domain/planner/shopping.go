// Package planner computes shopping needs from planned recipe demands
// and current pantry stock.
package planner

import (
	"math"

	"github.com/despensa/v1/internal/domain/measure"
	"github.com/despensa/v1/internal/domain/pantry"
)

// Demand is one ingredient requirement from a planned meal. Quantity is
// the amount for RecipeServings servings; the planner scales it to
// PlannedServings.
type Demand struct {
	Recipe          string
	Ingredient      string
	Quantity        float64
	Unit            string
	Category        pantry.Category
	RecipeServings  int
	PlannedServings int
}

// Need is an aggregated, pantry-discounted shopping requirement.
type Need struct {
	Name          string
	Quantity      float64
	Unit          string
	Category      pantry.Category
	SourceRecipes []string
}

type aggregate struct {
	name     string
	category pantry.Category
	value    float64
	class    measure.UnitClass
	recipes  []string
}

// ShoppingNeeds aggregates demands per normalized ingredient name in
// canonical units, subtracts matching pantry stock, and returns the
// remaining amounts in display units. Count-class demands for produce
// with a known per-piece weight are carried as mass so that "2 tomates"
// and "500 g de tomate" fold together. Zero-floored: stocked surplus
// never produces negative needs.
func ShoppingNeeds(demands []Demand, stock []*pantry.StockItem) []Need {
	order := make([]string, 0, len(demands))
	byKey := make(map[string]*aggregate)

	for _, d := range demands {
		key := measure.NormalizeName(d.Ingredient)
		servings := d.RecipeServings
		if servings <= 0 {
			servings = 1
		}
		planned := d.PlannedServings
		if planned <= 0 {
			planned = 1
		}
		qty := d.Quantity / float64(servings) * float64(planned)

		canonical := measure.Classify(qty, d.Unit)
		if canonical.Class == measure.ClassCount {
			if weight, ok := measure.CountWeight(key); ok {
				canonical = measure.Canonical{Value: qty * weight, Class: measure.ClassMass}
			}
		}

		agg, ok := byKey[key]
		if !ok {
			agg = &aggregate{
				name:     d.Ingredient,
				category: d.Category,
				value:    canonical.Value,
				class:    canonical.Class,
			}
			byKey[key] = agg
			order = append(order, key)
		} else if agg.class == canonical.Class {
			agg.value += canonical.Value
		}
		// Demands in a class irreconcilable with the first sighting are
		// dropped from the sum; the item still lists its source recipe.

		if !contains(agg.recipes, d.Recipe) {
			agg.recipes = append(agg.recipes, d.Recipe)
		}
	}

	needs := make([]Need, 0, len(order))
	for _, key := range order {
		agg := byKey[key]
		remaining := agg.value

		if item := findStock(stock, key); item != nil && remaining > 0 {
			pantryVal := measure.Classify(item.Quantity(), item.Unit())
			weight, hasWeight := measure.CountWeight(key)

			switch {
			case pantryVal.Class == agg.class:
				remaining = math.Max(0, remaining-pantryVal.Value)
			case pantryVal.Class == measure.ClassMass && agg.class == measure.ClassCount && hasWeight:
				remaining = math.Max(0, remaining-pantryVal.Value/weight)
			case pantryVal.Class == measure.ClassCount && agg.class == measure.ClassMass && hasWeight:
				remaining = math.Max(0, remaining-pantryVal.Value*weight)
			}
		}

		display := measure.ToDisplay(remaining, agg.class)
		needs = append(needs, Need{
			Name:          agg.name,
			Quantity:      display.Value,
			Unit:          display.Unit,
			Category:      agg.category,
			SourceRecipes: agg.recipes,
		})
	}

	return needs
}

func findStock(stock []*pantry.StockItem, key string) *pantry.StockItem {
	for _, item := range stock {
		if item.MatchesKey(key) {
			return item
		}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
