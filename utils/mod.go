package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// FirstMax returns the index of the first maximal value, replacing the
// current best only on strict improvement. Returns -1 for an empty slice.
func FirstMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}

// Mean panics on an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		panic("cannot average empty slice")
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
