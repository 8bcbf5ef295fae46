package util

import (
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// RandomFloat returns a random float64 between min and max
func RandomFloat(rng *rand.Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}

// RandomStep returns a random value in [min, max] snapped to a multiple of step.
// A non-positive step disables snapping.
func RandomStep(rng *rand.Rand, min, max, step float64) float64 {
	v := RandomFloat(rng, min, max)
	if step <= 0 {
		return v
	}
	return Clamp(RoundToStep(v, step), min, max)
}

// RoundToStep rounds value to the nearest multiple of step, trimming the
// binary noise left by the multiplication to the step's own precision
func RoundToStep(value, step float64) float64 {
	if step <= 0 {
		return value
	}
	return RoundDecimals(math.Round(value/step)*step, Decimals(step))
}

// Decimals returns the number of decimal places in the shortest representation of v
func Decimals(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// RoundDecimals rounds v to n decimal places
func RoundDecimals(v float64, n int) float64 {
	p := math.Pow(10, float64(n))
	return math.Round(v*p) / p
}

// Lerp performs linear interpolation between a and b with t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts a value to be between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// SmoothStep performs cubic interpolation between a and b
func SmoothStep(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	t = t * t * (3 - 2*t)
	return a + t*(b-a)
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
