package measure

import "errors"

// ErrIncompatibleUnits signals that two quantities live in unit classes
// that cannot be reconciled even with the density-1 fallback, e.g.
// subtracting milliliters from a count-based stock entry. Callers are
// expected to skip the operation and leave stock untouched; this is a
// recoverable condition, not a failure.
var ErrIncompatibleUnits = errors.New("incompatible unit classes")
