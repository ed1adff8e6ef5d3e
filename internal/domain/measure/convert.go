package measure

import "math"

// Quantity is a displayable (value, unit) pair.
type Quantity struct {
	Value float64 `json:"quantity"`
	Unit  string  `json:"unit"`
}

// CountUnit is the generic display label for count-class quantities.
const CountUnit = "uds"

// ToDisplay converts a canonical value back to the most readable unit:
// kilograms or liters once the base value reaches 1000, otherwise grams
// or milliliters. Count quantities keep one decimal so fractional eggs
// and half avocados survive display. Pure and total.
func ToDisplay(value float64, class UnitClass) Quantity {
	switch class {
	case ClassMass:
		if value >= 1000 {
			return Quantity{Value: round(value/1000, 2), Unit: "kg"}
		}
		return Quantity{Value: round(value, 0), Unit: "g"}
	case ClassVolume:
		if value >= 1000 {
			return Quantity{Value: round(value/1000, 2), Unit: "l"}
		}
		return Quantity{Value: round(value, 0), Unit: "ml"}
	default:
		return Quantity{Value: round(value, 1), Unit: CountUnit}
	}
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
