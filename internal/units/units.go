// Package units converts between a metric's display unit and its canonical
// storage unit. Every metric carries a conversion factor (e.g. 1000 for
// liters→milliliters); entries are stored normalized so day aggregates sum
// values in one unit.
package units

// Normalize converts a display-unit value into the canonical unit.
func Normalize(value, conversionFactor float64) float64 {
	return value * conversionFactor
}

// Denormalize converts a canonical stored value back into the display unit.
// The conversion factor must be non-zero; metric validation guarantees > 0.
func Denormalize(stored, conversionFactor float64) float64 {
	return stored / conversionFactor
}
