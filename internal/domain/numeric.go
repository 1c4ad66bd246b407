package domain

import (
	"math"
	"time"
)

// clamp restricts value to the [lo, hi] range.
func clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}

	return value
}

// safeRatio divides num by denom, treating a zero denominator as 0.
// Every ratio in the engine goes through this so the scorers stay total
// (no NaN/Inf can escape into a score).
func safeRatio(num, denom float64) float64 {
	if denom == 0 {
		return 0
	}

	return num / denom
}

// roundTo2Decimals rounds a float to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// daysSince returns whole days elapsed since t, relative to now.
// Future timestamps count as 0 days.
func daysSince(t, now time.Time) int {
	days := now.Sub(t).Hours() / 24
	if days < 0 {
		return 0
	}

	return int(days)
}

// daysSinceNullable is daysSince for optional timestamps.
// nil means "never observed" and returns -1 so tier ladders can
// distinguish it from "today".
func daysSinceNullable(t *time.Time, now time.Time) int {
	if t == nil {
		return -1
	}

	return daysSince(*t, now)
}
