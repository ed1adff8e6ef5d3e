package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		unit     string
		expected Canonical
	}{
		{"kilograms", 2, "kg", Canonical{2000, ClassMass}},
		{"grams", 500, "g", Canonical{500, ClassMass}},
		{"grams with dot", 500, "gr.", Canonical{500, ClassMass}},
		{"milligrams", 250, "mg", Canonical{0.25, ClassMass}},
		{"pounds", 1, "lb", Canonical{453.59, ClassMass}},
		{"ounces", 2, "oz", Canonical{56.7, ClassMass}},
		{"liters", 1.5, "l", Canonical{1500, ClassVolume}},
		{"spanish plural liters", 2, "litros", Canonical{2000, ClassVolume}},
		{"milliliters", 330, "ml", Canonical{330, ClassVolume}},
		{"centiliters", 33, "cl", Canonical{330, ClassVolume}},
		{"cups", 2, "taza", Canonical{480, ClassVolume}},
		{"tablespoons", 3, "cucharadas", Canonical{45, ClassVolume}},
		{"teaspoons", 2, "tsp", Canonical{10, ClassVolume}},
		{"pints", 1, "pint", Canonical{473.17, ClassVolume}},
		{"gallons", 1, "gallon", Canonical{3785.41, ClassVolume}},
		{"dozen", 2, "docena", Canonical{24, ClassCount}},
		{"uppercase with spaces", 1, " KG ", Canonical{1000, ClassMass}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.qty, tt.unit)
			assert.Equal(t, tt.expected.Class, got.Class)
			assert.InDelta(t, tt.expected.Value, got.Value, 0.001)
		})
	}
}

func TestClassifyUnknownUnitDefaultsToCount(t *testing.T) {
	for _, unit := range []string{"manojos", "puñado", "pizca", "latas", ""} {
		got := Classify(3, unit)
		assert.Equal(t, ClassCount, got.Class, "unit %q", unit)
		assert.Equal(t, 3.0, got.Value, "unit %q", unit)
	}
}

func TestToDisplay(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		class    UnitClass
		expected Quantity
	}{
		{"mass scales to kg", 2500, ClassMass, Quantity{2.5, "kg"}},
		{"mass stays in g", 750, ClassMass, Quantity{750, "g"}},
		{"mass rounds grams", 750.4, ClassMass, Quantity{750, "g"}},
		{"kg keeps two decimals", 1234, ClassMass, Quantity{1.23, "kg"}},
		{"volume scales to l", 1500, ClassVolume, Quantity{1.5, "l"}},
		{"volume stays in ml", 330, ClassVolume, Quantity{330, "ml"}},
		{"count keeps one decimal", 2.25, ClassCount, Quantity{2.3, "uds"}},
		{"exactly one thousand", 1000, ClassMass, Quantity{1, "kg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ToDisplay(tt.value, tt.class))
		})
	}
}

// Classifying, displaying and re-classifying must land back on the same
// canonical value within display-rounding tolerance.
func TestDisplayRoundTrip(t *testing.T) {
	tests := []struct {
		qty  float64
		unit string
	}{
		{2, "kg"}, {500, "g"}, {1.5, "l"}, {330, "ml"}, {3, "uds"}, {2, "docena"},
	}

	for _, tt := range tests {
		canonical := Classify(tt.qty, tt.unit)
		display := ToDisplay(canonical.Value, canonical.Class)
		back := Classify(display.Value, display.Unit)
		assert.Equal(t, canonical.Class, back.Class, "%v %s", tt.qty, tt.unit)
		assert.InDelta(t, canonical.Value, back.Value, canonical.Value*0.01+0.5, "%v %s", tt.qty, tt.unit)
	}
}

func TestCountWeight(t *testing.T) {
	w, ok := CountWeight("tomate")
	assert.True(t, ok)
	assert.Equal(t, 150.0, w)

	_, ok = CountWeight("azafran")
	assert.False(t, ok)
}
