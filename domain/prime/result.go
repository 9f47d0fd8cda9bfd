package prime

// Partial is the largest prime one worker found in its sub-range.
// Found is false when the sub-range holds no prime.
type Partial[T Unsigned] struct {
	Index int
	Prime T
	Found bool
}

// Result is the largest prime over a whole interval, if any.
type Result[T Unsigned] struct {
	Prime T
	Found bool
}

// Largest returns the largest value of an ascending sequence.
func Largest[T Unsigned](ascending []T) (T, bool) {
	if len(ascending) == 0 {
		var zero T
		return zero, false
	}
	return ascending[len(ascending)-1], true
}

// Merge folds a partial result into r and returns the new maximum.
//
// A found value replaces the current maximum when it is strictly greater, or
// when no maximum is held yet and the value is greater than 1. Values 0 and 1
// are never reported.
func (r Result[T]) Merge(p Partial[T]) Result[T] {
	if !p.Found {
		return r
	}
	switch {
	case r.Found && p.Prime > r.Prime:
		return Result[T]{Prime: p.Prime, Found: true}
	case !r.Found && p.Prime > 1:
		return Result[T]{Prime: p.Prime, Found: true}
	}
	return r
}

// Reduce merges every partial into an empty Result.
func Reduce[T Unsigned](partials ...Partial[T]) Result[T] {
	var r Result[T]
	for _, p := range partials {
		r = r.Merge(p)
	}
	return r
}
