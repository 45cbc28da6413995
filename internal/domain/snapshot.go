package domain

import "time"

// BoardSnapshot is a copy of the board state held by the store.
// Fields are ordered to minimize memory padding.
type BoardSnapshot struct {
	LoadedAt  time.Time // Time of the last successful refresh
	Err       error     // Error of the last visible refresh, nil on success
	ProjectID EntityID
	Board     Board
	Mutations []MutationState // Unsettled mutations, oldest first
	Loading   bool            // A visible refresh is in flight
	Loaded    bool            // At least one refresh has succeeded
}

// Pending returns the number of unsettled mutations.
func (s BoardSnapshot) Pending() int {
	return len(s.Mutations)
}
