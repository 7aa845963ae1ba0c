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

func Sum[T constraints.Integer](slice []T) T {
	var sum T
	for _, v := range slice {
		sum += v
	}
	return sum
}
