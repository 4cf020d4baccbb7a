package utils

import (
	"math"
)

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// Lerp performs linear interpolation between two values
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Interp maps x from the segment [x0, x1] onto [y0, y1].
// The segment may be given in descending order (x0 > x1), which inverts the mapping.
// Values outside the segment take the nearest endpoint.
func Interp(x, x0, x1, y0, y1 float64) float64 {
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return Lerp(y0, y1, (x-x0)/(x1-x0))
}

// Mean returns the arithmetic mean of values, and false when values is empty.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}
