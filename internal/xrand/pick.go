package xrand

import (
	"math/rand/v2"
)

// Pick returns a random element of values, or the zero value if it is empty.
func Pick[T any](values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[rand.IntN(len(values))]
}
