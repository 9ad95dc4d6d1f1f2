package utils

import "golang.org/x/exp/constraints"

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Abs[T constraints.Signed | constraints.Float](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Ratio returns part/total, or 0 when total is zero.
func Ratio[T constraints.Integer](part, total T) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}
