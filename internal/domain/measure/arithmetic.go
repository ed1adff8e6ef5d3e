package measure

import "math"

// densityBridged reports whether two classes can be reconciled by the
// density-1 heuristic (1 g treated as 1 ml). Good enough for water-like
// staples: "1 kg de leche" minus "200 ml de leche" works without a
// per-ingredient density table.
func densityBridged(a, b UnitClass) bool {
	return (a == ClassMass && b == ClassVolume) || (a == ClassVolume && b == ClassMass)
}

// Subtract removes a used amount from a source amount, returning the
// remainder displayed in the source's unit class. The result is clamped
// at zero; consumption can never drive stock negative. Returns
// ErrIncompatibleUnits when the classes cannot be reconciled (anything
// pairing Count with Mass or Volume).
func Subtract(sourceQty float64, sourceUnit string, usedQty float64, usedUnit string) (Quantity, error) {
	source := Classify(sourceQty, sourceUnit)
	used := Classify(usedQty, usedUnit)

	if source.Class != used.Class && !densityBridged(source.Class, used.Class) {
		return Quantity{}, ErrIncompatibleUnits
	}

	remaining := math.Max(0, source.Value-used.Value)
	return ToDisplay(remaining, source.Class), nil
}

// Add merges an added amount into a current amount, displayed in the
// current amount's class. Add never fails: same-class values sum in
// canonical units, mass/volume pairs sum through the density-1 bridge,
// and truly incompatible pairs fall back to a raw numeric sum under the
// current unit. A pantry merge must never block an update, so doing
// something reasonable beats refusing.
func Add(currentQty float64, currentUnit string, addedQty float64, addedUnit string) Quantity {
	current := Classify(currentQty, currentUnit)
	added := Classify(addedQty, addedUnit)

	if current.Class != added.Class && !densityBridged(current.Class, added.Class) {
		return Quantity{Value: currentQty + addedQty, Unit: currentUnit}
	}

	return ToDisplay(current.Value+added.Value, current.Class)
}
