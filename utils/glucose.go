package utils

import "errors"

// Default alert bounds (mg/dL) when the user has not set a personal target
// range. 70–180 is the consensus time-in-range band for adults.
const (
	DefaultTargetLow  = 70.0
	DefaultTargetHigh = 180.0
)

// ValidateReading expects a blood-glucose value in mg/dL.
func ValidateReading(mgdl float64) error {
	if mgdl <= 0 {
		return errors.New("reading must be positive")
	}
	// Sanity check to avoid garbage input
	if mgdl < 10 || mgdl > 1000 {
		return errors.New("reading out of plausible range")
	}
	return nil
}

// ClassifyReading places a value against a [low, high] target band.
// Returns "low", "in_range" or "high".
func ClassifyReading(mgdl, low, high float64) string {
	if low <= 0 {
		low = DefaultTargetLow
	}
	if high <= 0 {
		high = DefaultTargetHigh
	}
	switch {
	case mgdl < low:
		return "low"
	case mgdl > high:
		return "high"
	default:
		return "in_range"
	}
}
