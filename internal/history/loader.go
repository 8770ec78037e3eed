// ABOUTME: History loader for the durable query/response records
// ABOUTME: Wholesale replacement with last-write-wins across racing fetches

package history

import (
	"context"

	"campusbot/internal/client"
)

// API is the slice of the backend client the loader needs.
type API interface {
	History(ctx context.Context) ([]client.HistoryEntry, error)
}

// Loader fetches and holds the complete list of prior history entries
// for the authenticated identity. Fetches are read-only and idempotent;
// each successful load replaces the previous list wholesale.
type Loader struct {
	api     API
	entries []client.HistoryEntry
	gen     uint64 // generation of the last applied load
	nextGen uint64 // generation handed to the next fetch
}

// NewLoader creates a loader over the given history API.
func NewLoader(api API) *Loader {
	return &Loader{api: api}
}

// Entries returns the most recently applied list.
func (l *Loader) Entries() []client.HistoryEntry {
	return l.entries
}

// BeginFetch reserves a generation for a fetch about to start. Racing
// fetches may complete out of order; Apply drops results from an older
// generation than one already applied.
func (l *Loader) BeginFetch() uint64 {
	l.nextGen++
	return l.nextGen
}

// Fetch performs the network load for a previously reserved generation.
func (l *Loader) Fetch(ctx context.Context) ([]client.HistoryEntry, error) {
	return l.api.History(ctx)
}

// Apply installs a fetch result. Stale generations are ignored and the
// prior list is kept; the caller surfaces nothing for a dropped result.
// Failed fetches never reach Apply, so the stale list survives failures.
func (l *Loader) Apply(gen uint64, entries []client.HistoryEntry) bool {
	if gen <= l.gen {
		return false
	}
	l.gen = gen
	l.entries = entries
	return true
}

// Reset clears all loaded state, used when the identity is discarded.
func (l *Loader) Reset() {
	l.entries = nil
}
