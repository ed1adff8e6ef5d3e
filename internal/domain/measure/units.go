// Package measure contains the unit reconciliation core: ingredient name
// normalization, unit classification into dimension classes, canonical-value
// arithmetic and display conversion.
package measure

import "strings"

// UnitClass is the dimension a unit belongs to.
type UnitClass string

const (
	ClassMass   UnitClass = "mass"
	ClassVolume UnitClass = "volume"
	ClassCount  UnitClass = "count"
)

// Canonical is a quantity normalized to the base unit of its class:
// grams for mass, milliliters for volume, each for count.
type Canonical struct {
	Value float64
	Class UnitClass
}

type unitDef struct {
	class  UnitClass
	factor float64 // multiplier to the class base unit
}

// unitAliases maps preprocessed unit spellings (lowercase, no trailing
// dot, singularized) to their class and base-unit factor. Spanish and
// English spellings share entries because incoming batches mix both.
var unitAliases = map[string]unitDef{
	// Mass, base = gram
	"kg":        {ClassMass, 1000},
	"kilo":      {ClassMass, 1000},
	"kilogramo": {ClassMass, 1000},
	"g":         {ClassMass, 1},
	"gr":        {ClassMass, 1},
	"gramo":     {ClassMass, 1},
	"mg":        {ClassMass, 0.001},
	"miligramo": {ClassMass, 0.001},
	"lb":        {ClassMass, 453.59},
	"libra":     {ClassMass, 453.59},
	"pound":     {ClassMass, 453.59},
	"oz":        {ClassMass, 28.35},
	"onza":      {ClassMass, 28.35},
	"ounce":     {ClassMass, 28.35},

	// Volume, base = milliliter
	"l":          {ClassVolume, 1000},
	"litro":      {ClassVolume, 1000},
	"lt":         {ClassVolume, 1000},
	"ml":         {ClassVolume, 1},
	"mililitro":  {ClassVolume, 1},
	"cc":         {ClassVolume, 1},
	"cl":         {ClassVolume, 10},
	"centilitro": {ClassVolume, 10},
	"dl":         {ClassVolume, 100},
	"decilitro":  {ClassVolume, 100},
	// Kitchen measures use the rounded 240 ml cup rather than the exact
	// US customary value; pantry amounts are approximations anyway.
	"taza":        {ClassVolume, 240},
	"cup":         {ClassVolume, 240},
	"vaso":        {ClassVolume, 240},
	"cucharada":   {ClassVolume, 15},
	"tbsp":        {ClassVolume, 15},
	"cda":         {ClassVolume, 15},
	"cucharadita": {ClassVolume, 5},
	"tsp":         {ClassVolume, 5},
	"cdta":        {ClassVolume, 5},
	"pinta":       {ClassVolume, 473.17},
	"pint":        {ClassVolume, 473.17},
	"pt":          {ClassVolume, 473.17},
	"galon":       {ClassVolume, 3785.41},
	"gallon":      {ClassVolume, 3785.41},
	"gal":         {ClassVolume, 3785.41},
	"onza fluida": {ClassVolume, 29.57},
	"fl oz":       {ClassVolume, 29.57},

	// Count, base = each
	"docena": {ClassCount, 12},
}

// Classify maps a raw (quantity, unit) pair to its canonical value.
// Unrecognized unit spellings degrade to Count with factor 1; bunches,
// pinches and brand-specific packagings stay comparable among themselves
// even though they cannot be converted to grams without context.
// Classify never fails.
func Classify(quantity float64, unit string) Canonical {
	u := strings.TrimSpace(strings.ToLower(unit))
	u = strings.TrimSuffix(u, ".")
	u = strings.TrimSuffix(u, "s")

	if def, ok := unitAliases[u]; ok {
		return Canonical{Value: quantity * def.factor, Class: def.class}
	}
	return Canonical{Value: quantity, Class: ClassCount}
}
