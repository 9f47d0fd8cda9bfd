package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_IsSearchOperation(t *testing.T) {
	assert.True(t, OperationSearch.IsSearchOperation())
	assert.True(t, OperationSearchSubRange.IsSearchOperation())
	assert.False(t, OperationIsPrime.IsSearchOperation())
	assert.False(t, Operation("primes.searcher").IsSearchOperation())
}

func TestOperation_String(t *testing.T) {
	assert.Equal(t, "primes.search", OperationSearch.String())
}
