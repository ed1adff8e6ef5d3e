package pantry

import (
	"strings"
	"time"

	"github.com/despensa/v1/internal/domain/measure"
)

// Category is the shelf section a stock item belongs to.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryFish       Category = "fish"
	CategoryGrains     Category = "grains"
	CategorySpices     Category = "spices"
	CategoryPantry     Category = "pantry"
	CategoryOther      Category = "other"
)

// ParseCategory maps a free-text category to a known value, defaulting
// to CategoryOther.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryVegetables, CategoryFruits, CategoryDairy, CategoryMeat,
		CategoryFish, CategoryGrains, CategorySpices, CategoryPantry:
		return c
	default:
		return CategoryOther
	}
}

// IsProtein reports whether the category triggers the protein-added
// notification on reconciliation.
func (c Category) IsProtein() bool {
	return c == CategoryMeat || c == CategoryFish
}

type categoryRule struct {
	keyword     string
	category    Category
	defaultUnit string
}

// categoryRules predicts a category and sensible default unit from the
// item name. Ordered so lookup stays deterministic when several
// keywords could match.
var categoryRules = []categoryRule{
	{"leche", CategoryDairy, "l"},
	{"yogur", CategoryDairy, "uds"},
	{"huevo", CategoryDairy, "uds"},
	{"queso", CategoryDairy, "g"},
	{"arroz", CategoryGrains, "kg"},
	{"pasta", CategoryGrains, "kg"},
	{"pan", CategoryGrains, "uds"},
	{"harina", CategoryPantry, "kg"},
	{"azucar", CategoryPantry, "kg"},
	{"sal", CategorySpices, "kg"},
	{"aceite", CategoryPantry, "l"},
	{"tomate", CategoryVegetables, "kg"},
	{"lechuga", CategoryVegetables, "uds"},
	{"cebolla", CategoryVegetables, "kg"},
	{"ajo", CategoryVegetables, "uds"},
	{"pollo", CategoryMeat, "kg"},
	{"carne", CategoryMeat, "kg"},
	{"pescado", CategoryFish, "kg"},
	{"atun", CategoryPantry, "uds"},
	{"manzana", CategoryFruits, "kg"},
	{"platano", CategoryFruits, "kg"},
	{"naranja", CategoryFruits, "kg"},
	{"papel", CategoryOther, "uds"},
	{"jabon", CategoryOther, "l"},
}

// SuggestCategory predicts a category and default unit for a raw item
// name. Falls back to CategoryOther with a count unit when no keyword
// matches.
func SuggestCategory(name string) (Category, string) {
	normalized := measure.NormalizeName(name)
	for _, rule := range categoryRules {
		if strings.Contains(normalized, rule.keyword) {
			return rule.category, rule.defaultUnit
		}
	}
	return CategoryOther, measure.CountUnit
}

// shelfLifeDays is a default freshness window per category, used to fill
// a missing expiry on newly stocked items when the caller asks for it.
var shelfLifeDays = map[Category]int{
	CategoryVegetables: 7,
	CategoryFruits:     7,
	CategoryDairy:      14,
	CategoryMeat:       3,
	CategoryFish:       2,
	CategoryGrains:     180,
	CategoryPantry:     90,
	CategorySpices:     365,
	CategoryOther:      30,
}

// DefaultShelfLife returns the default time-to-expiry for a category.
func DefaultShelfLife(c Category) time.Duration {
	days, ok := shelfLifeDays[c]
	if !ok {
		days = shelfLifeDays[CategoryOther]
	}
	return time.Duration(days) * 24 * time.Hour
}
