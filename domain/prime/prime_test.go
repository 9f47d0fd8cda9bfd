package prime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRange_DetectsPrime(t *testing.T) {
	assert.Equal(t, []uint64{17}, Range[uint64](17, 17))
}

func TestRange_DetectsNonPrime(t *testing.T) {
	// 217 = 7 * 31
	assert.Empty(t, Range[uint64](217, 217))
}

func TestRange_SkipsZeroAndOne(t *testing.T) {
	assert.Empty(t, Range[uint64](0, 1))
	assert.Equal(t, []uint64{2}, Range[uint64](0, 2))
}

func TestRange_FindsAllPrimesFrom0To20(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19}, Range[uint64](0, 20))
}

func TestRange_FindsAllPrimesFrom20To40(t *testing.T) {
	assert.Equal(t, []uint64{23, 29, 31, 37}, Range[uint64](20, 40))
}

func TestRange_Idempotent(t *testing.T) {
	first := Range[uint32](100, 300)
	second := Range[uint32](100, 300)
	assert.Equal(t, first, second)
}

func TestRange_StopsAtTypeMaximum(t *testing.T) {
	// 251 is the largest prime below 256.
	assert.Equal(t, []uint8{251}, Range[uint8](250, math.MaxUint8))
}

func TestRange_MatchesIsPrime(t *testing.T) {
	for p := uint64(0); p <= 500; p++ {
		got := Range(p, p)
		if IsPrime(p) {
			assert.Equal(t, []uint64{p}, got, "p=%d", p)
		} else {
			assert.Empty(t, got, "p=%d", p)
		}
	}
}

func TestRangeKnown_EmptyPrefixFromZero(t *testing.T) {
	assert.Equal(t, []uint64{2, 3, 5, 7, 11, 13, 17, 19}, RangeKnown[uint64](0, 20, []uint64{}))
}

func TestRangeKnown_MatchesRange(t *testing.T) {
	tests := []struct {
		name  string
		start uint64
		end   uint64
	}{
		{"from zero", 0, 200},
		{"middle", 200, 400},
		{"single prime", 97, 97},
		{"single composite", 91, 91},
		{"no primes", 24, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			known := Range[uint64](0, tt.start)
			assert.Equal(t, Range(tt.start, tt.end), RangeKnown(tt.start, tt.end, known))
		})
	}
}

func TestRangeKnown_SharedBoundaryIsStillPrime(t *testing.T) {
	// 5 is both the last value of the previous sub-range and in the prefix.
	known := []uint64{2, 3, 5}
	assert.Equal(t, []uint64{5, 7}, RangeKnown[uint64](5, 10, known))
}

func TestRangeKnown_ShortPrefixFallsBack(t *testing.T) {
	// The prefix stops at 3 but 121 = 11 * 11 needs larger divisors.
	assert.Equal(t, []uint64{127}, RangeKnown[uint64](121, 127, []uint64{2, 3}))
}

func TestRangeKnown_IncompletePrefix(t *testing.T) {
	tests := []struct {
		name  string
		start uint64
		end   uint64
		known []uint64
	}{
		{"nil prefix", 100, 130, nil},
		{"prefix ends far below start", 100, 130, []uint64{2, 3, 5, 7}},
		{"prefix reaches sqrt but not start", 400, 600, []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23}},
		{"start just above two", 3, 50, nil},
		{"single composite square", 169, 169, []uint64{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Range(tt.start, tt.end), RangeKnown(tt.start, tt.end, tt.known))
		})
	}
}

func TestRangeKnown_NilPrefixMatchesRange(t *testing.T) {
	for start := uint64(0); start <= 120; start += 7 {
		end := start + 60
		assert.Equal(t, Range(start, end), RangeKnown[uint64](start, end, nil), "start=%d", start)
	}
}

func TestRangeKnown_NilPrefixNearTypeMaximum(t *testing.T) {
	// 4294967291 is the largest prime below 2^32.
	got := RangeKnown[uint32](math.MaxUint32-10, math.MaxUint32, nil)
	assert.Equal(t, []uint32{4294967291}, got)
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{120, 10},
		{121, 11},
		{math.MaxUint64, math.MaxUint32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isqrt(tt.n), "n=%d", tt.n)
	}
	assert.Equal(t, uint8(15), isqrt[uint8](math.MaxUint8))
}

func TestRangeKnown_DoesNotMutateKnown(t *testing.T) {
	known := []uint64{2, 3, 5, 7}
	snapshot := append([]uint64(nil), known...)

	got := RangeKnown[uint64](8, 30, known)

	require.Equal(t, []uint64{11, 13, 17, 19, 23, 29}, got)
	assert.Equal(t, snapshot, known)
}

func TestRangeKnown_Idempotent(t *testing.T) {
	known := Range[uint64](0, 50)
	assert.Equal(t, RangeKnown[uint64](50, 150, known), RangeKnown[uint64](50, 150, known))
}

func TestIsPrime(t *testing.T) {
	tests := []struct {
		n     uint64
		prime bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{97, true},
		{217, false},
		{7919, true},
		{1_000_000_007, true},
		{1_000_000_008, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.prime, IsPrime(tt.n), "n=%d", tt.n)
	}
}
