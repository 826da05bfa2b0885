package domain

import "context"

// Searcher runs one search. On store failure it returns the unavailable Result
// together with an ErrorCodeUnavailable error so html callers can still render the form
type Searcher interface {
	Search(ctx context.Context, q SearchQuery) (Result, error)
}
