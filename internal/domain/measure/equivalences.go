package measure

// countWeights maps normalized produce names to an approximate weight in
// grams for one piece. It bridges Count and Mass when a recipe asks for
// "2 tomates" but the pantry tracks kilograms. Values are typical
// supermarket averages.
var countWeights = map[string]float64{
	"tomate":    150,
	"cebolla":   130,
	"ajo":       10,
	"huevo":     60,
	"pimiento":  180,
	"zanahoria": 90,
	"patata":    200,
	"aguacate":  220,
	"limon":     100,
	"manzana":   180,
	"platano":   130,
	"pepino":    250,
	"calabacin": 300,
}

// CountWeight returns the grams-per-piece equivalence for a normalized
// ingredient name. The second return is false when no equivalence is
// known, in which case count quantities stay in the Count class.
func CountWeight(normalizedName string) (float64, bool) {
	w, ok := countWeights[normalizedName]
	return w, ok
}
