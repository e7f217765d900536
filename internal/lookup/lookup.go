// Package lookup defines the asynchronous user lookup collaborator consumed
// by the search controller, plus an in-process mock backend.
package lookup

import (
	"context"
	"errors"
)

// ErrLookupFailed is returned (wrapped) whenever a lookup cannot produce a
// result set, whatever the underlying cause.
var ErrLookupFailed = errors.New("lookup failed")

// Record is a single search hit. Records are values and never mutated after
// a lookup returns them.
type Record struct {
	DisplayName string
	ID          string
}

// Lookuper resolves a query to an ordered sequence of records.
// Implementations may block; callers run them off the UI loop.
type Lookuper interface {
	Lookup(ctx context.Context, query string) ([]Record, error)
}

// Func adapts a plain function to Lookuper.
type Func func(ctx context.Context, query string) ([]Record, error)

// Ensure Func implements Lookuper.
var _ Lookuper = Func(nil)

// Lookup implements Lookuper.
func (f Func) Lookup(ctx context.Context, query string) ([]Record, error) {
	return f(ctx, query)
}
