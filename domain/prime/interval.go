package prime

import (
	"errors"
	"fmt"
)

// ErrInvalidInterval indicates an interval whose start is greater than its end.
var ErrInvalidInterval = errors.New("start is greater than end")

// Interval is an inclusive numeric range [Start, End].
type Interval[T Unsigned] struct {
	Start T
	End   T
}

// NewInterval creates an Interval, rejecting start > end.
func NewInterval[T Unsigned](start, end T) (Interval[T], error) {
	if start > end {
		return Interval[T]{}, fmt.Errorf("%w: %d > %d", ErrInvalidInterval, start, end)
	}
	return Interval[T]{Start: start, End: end}, nil
}

// IsSingle reports whether the interval holds exactly one value.
func (iv Interval[T]) IsSingle() bool { return iv.Start == iv.End }

// Size returns End - Start.
func (iv Interval[T]) Size() T { return iv.End - iv.Start }

// String returns the interval as "[start, end]".
func (iv Interval[T]) String() string {
	return fmt.Sprintf("[%d, %d]", iv.Start, iv.End)
}

// SubRange is one contiguous piece of an Interval assigned to a single worker.
// Index is the position of the sub-range in the partition, starting at 0.
type SubRange[T Unsigned] struct {
	Index int
	Start T
	End   T
}

// Partition splits iv into exactly n contiguous sub-ranges.
//
// Every sub-range but the last spans (End-Start)/n values; the last one absorbs
// the remainder of the division so the final End equals iv.End. Adjacent
// sub-ranges share their boundary value. When n <= 1 or the interval holds a
// single value, the whole interval is returned as one sub-range.
func Partition[T Unsigned](iv Interval[T], n int) []SubRange[T] {
	if n <= 1 || iv.IsSingle() {
		return []SubRange[T]{{Index: 0, Start: iv.Start, End: iv.End}}
	}

	total := uint64(iv.Size())
	base := total / uint64(n)
	last := total - base*uint64(n-1)

	ranges := make([]SubRange[T], n)
	start := uint64(iv.Start)
	for i := 0; i < n; i++ {
		size := base
		if i == n-1 {
			size = last
		}
		ranges[i] = SubRange[T]{
			Index: i,
			Start: T(start),
			End:   T(start + size),
		}
		start += size
	}
	return ranges
}

// JobSizes returns the size of every sub-range but the last, and the size of
// the last one, for a partition of iv into n pieces.
func JobSizes[T Unsigned](iv Interval[T], n int) (base, last T) {
	if n <= 1 || iv.IsSingle() {
		return iv.Size(), iv.Size()
	}
	total := uint64(iv.Size())
	b := total / uint64(n)
	return T(b), T(total - b*uint64(n-1))
}
