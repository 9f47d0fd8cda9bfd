package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/primes/domain/prime"
)

func feed(partials ...prime.Partial[uint64]) chan prime.Partial[uint64] {
	ch := make(chan prime.Partial[uint64], len(partials))
	for _, p := range partials {
		ch <- p
	}
	return ch
}

func TestAggregate_StrictMaximum(t *testing.T) {
	rx := feed(
		prime.Partial[uint64]{Index: 2, Prime: 31, Found: true},
		prime.Partial[uint64]{Index: 0},
		prime.Partial[uint64]{Index: 3, Prime: 37, Found: true},
		prime.Partial[uint64]{Index: 1, Prime: 29, Found: true},
	)

	result, received, err := Aggregate(context.Background(), rx, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, received)
	assert.Equal(t, prime.Result[uint64]{Prime: 37, Found: true}, result)
}

func TestAggregate_AllAbsent(t *testing.T) {
	rx := feed(prime.Partial[uint64]{Index: 0}, prime.Partial[uint64]{Index: 1})

	result, _, err := Aggregate(context.Background(), rx, 2)
	require.NoError(t, err)
	assert.False(t, result.Found)
}

func TestAggregate_StopsAfterN(t *testing.T) {
	// Extra messages are left on the channel.
	rx := feed(
		prime.Partial[uint64]{Index: 0, Prime: 5, Found: true},
		prime.Partial[uint64]{Index: 1, Prime: 97, Found: true},
	)

	result, received, err := Aggregate(context.Background(), rx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, received)
	assert.Equal(t, uint64(5), result.Prime)
	assert.Len(t, rx, 1)
}

func TestAggregate_ClosedEarly(t *testing.T) {
	rx := feed(prime.Partial[uint64]{Index: 0, Prime: 13, Found: true})
	close(rx)

	result, received, err := Aggregate(context.Background(), rx, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteAggregation))
	assert.Equal(t, 1, received)
	assert.Equal(t, uint64(13), result.Prime)
}

func TestAggregate_Deadline(t *testing.T) {
	rx := make(chan prime.Partial[uint64])
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, received, err := Aggregate(ctx, rx, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, received)
}
