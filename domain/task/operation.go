package task

import "strings"

// Operation represents the type of a tracked operation.
type Operation string

// Operation values for the prime search.
const (
	OperationSearch         Operation = "primes.search"
	OperationSearchSubRange Operation = "primes.search.subrange"
	OperationIsPrime        Operation = "primes.is_prime"
)

// String returns the string representation of the operation.
func (o Operation) String() string {
	return string(o)
}

// IsSearchOperation returns true if the operation belongs to the range search.
func (o Operation) IsSearchOperation() bool {
	return o == OperationSearch || strings.HasPrefix(string(o), string(OperationSearch)+".")
}
