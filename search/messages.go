package search

import (
	"sync/atomic"

	"finaily/outcome"
	"finaily/types"
)

// SelectedMsg is emitted when the user picks a suggestion or submits raw text.
// Navigation belongs to whoever receives it.
type SelectedMsg struct {
	Symbol string
}

// debounceMsg fires when the debounce window of query seq elapses
type debounceMsg struct {
	id  int
	seq int
}

// resultsMsg carries the outcome of the fetch issued for query seq
type resultsMsg struct {
	id      int
	seq     int
	query   string
	outcome outcome.Outcome[types.SearchResponse]
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}
