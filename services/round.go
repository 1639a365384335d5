package services

import "math"

// RoundUpHalf rounds a quantity up to the nearest half unit.
// Examples: 11.1 -> 11.5, 11.5 -> 11.5, 11.6 -> 12, 12 -> 12.
// All derived quantities (fabric, lining, lead rope, track/rod) pass through
// this before being stored or multiplied into an amount.
func RoundUpHalf(value float64) float64 {
	return math.Ceil(value*2) / 2
}
