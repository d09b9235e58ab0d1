package places

import "strings"

const (
	PriceLevelFree          = 0
	PriceLevelInexpensive   = 1
	PriceLevelModerate      = 2
	PriceLevelExpensive     = 3
	PriceLevelVeryExpensive = 4
)

// NormalizePriceLevel maps the Places API string enum (with or without the
// "PRICE_LEVEL_" prefix) to the canonical 0..4 scale. Absent or unrecognized
// values map to 0. Raw price-level strings never travel past this function.
func NormalizePriceLevel(raw string) int {
	switch strings.TrimPrefix(raw, "PRICE_LEVEL_") {
	case "FREE":
		return PriceLevelFree
	case "INEXPENSIVE":
		return PriceLevelInexpensive
	case "MODERATE":
		return PriceLevelModerate
	case "EXPENSIVE":
		return PriceLevelExpensive
	case "VERY_EXPENSIVE":
		return PriceLevelVeryExpensive
	}
	return PriceLevelFree
}
