package mathhelp

import "math"

func BetweenInc(f, p, q int64) bool {
	if p <= q {
		return p <= f && f <= q
	}
	return q <= f && f <= p
}

func EuclidianMod(d, m int) int {
	r := d % m
	if (r < 0 && m > 0) || (r > 0 && m < 0) {
		return r + m
	}
	return r
}

// FloorDiv divides and rounds towards negative infinity,
// unlike Go's native integer division which truncates towards zero.
func FloorDiv(d, m int) int {
	return (d - EuclidianMod(d, m)) / m
}

// FloorToMultiple rounds f down to the next lower multiple of m.
func FloorToMultiple(f float64, m int) int {
	return int(math.Floor(f/float64(m))) * m
}
