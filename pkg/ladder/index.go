package ladder

import "fmt"

// NextIndex returns i+1 wrapped into [0, limit). It panics if limit < 1.
func NextIndex(i, limit int) int {
	checkLimit(limit)
	return (i + 1) % limit
}

// PreviousIndex returns i-1 wrapped into [0, limit). It panics if limit < 1.
func PreviousIndex(i, limit int) int {
	checkLimit(limit)
	return (i + limit - 1) % limit
}

func checkLimit(limit int) {
	if limit < 1 {
		panic(fmt.Sprintf("ladder: index limit %d < 1", limit))
	}
}
