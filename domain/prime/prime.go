// Package prime provides the pure building blocks of the largest-prime search:
// trial-division primality testing over a range, interval partitioning and the
// reduction of partial results.
package prime

import "math"

// Unsigned is the set of integer types the search can run over. The width is
// chosen by the caller through the type parameter.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Range returns every prime in [start, end] in ascending order.
//
// Each candidate p is trial-divided by every integer from 2 through p/2.
// Candidates 0 and 1 are skipped.
func Range[T Unsigned](start, end T) []T {
	var primes []T
	if start > end {
		return primes
	}
	for p := start; ; p++ {
		if p > 1 && !hasDivisor(p, 2) {
			primes = append(primes, p)
		}
		if p == end {
			break
		}
	}
	return primes
}

// hasDivisor reports whether p has a divisor d with from <= d <= p/2.
func hasDivisor[T Unsigned](p, from T) bool {
	for d := from; d <= p/2; d++ {
		if p%d == 0 {
			return true
		}
	}
	return false
}

// RangeKnown returns every prime in [start, end] in ascending order, testing
// candidates against an ascending prefix of known primes instead of every
// integer. The result always equals Range(start, end).
//
// known is read as a gap-free prefix of the primes: every prime up to its
// largest element below start. It may stop short of start or be empty; the
// primes missing between its last element and sqrt(end) are found by trial
// division first. known is never modified. When the prefix reaches start,
// primes found during the call extend a private working copy so later
// candidates in the same range benefit from them.
func RangeKnown[T Unsigned](start, end T, known []T) []T {
	var primes []T
	if start > end {
		return primes
	}

	working := make([]T, 0, len(known))
	for _, q := range known {
		if q <= 1 || q >= start {
			continue
		}
		if n := len(working); n > 0 && q <= working[n-1] {
			break
		}
		working = append(working, q)
	}

	// covered is the largest value below which working holds every prime.
	var covered T = 1
	if n := len(working); n > 0 {
		covered = working[n-1]
	}
	if limit := isqrt(end); start > 0 && covered < limit {
		if limit > start-1 {
			limit = start - 1
		}
		for d := covered + 1; d <= limit; d++ {
			if isPrimeKnown(d, working) {
				working = append(working, d)
			}
		}
		if limit > covered {
			covered = limit
		}
	}
	contiguous := start == 0 || covered >= start-1

	for p := start; ; p++ {
		if p > 1 && isPrimeKnown(p, working) {
			primes = append(primes, p)
			if contiguous {
				working = append(working, p)
			}
		}
		if p == end {
			break
		}
	}
	return primes
}

// isqrt returns the largest r with r*r <= n.
func isqrt[T Unsigned](n T) T {
	r := T(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}

func isPrimeKnown[T Unsigned](p T, known []T) bool {
	var last T
	for _, q := range known {
		if q > p/q {
			return true
		}
		if p%q == 0 {
			return false
		}
		last = q
	}

	from := last + 1
	if from < 2 {
		from = 2
	}
	for d := from; d <= p/d; d++ {
		if p%d == 0 {
			return false
		}
	}
	return true
}

// IsPrime reports whether n is prime, trial-dividing up to its square root.
func IsPrime[T Unsigned](n T) bool {
	return n > 1 && isPrimeKnown(n, nil)
}
