package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultLatency is the simulated round trip of the mock backend.
const DefaultLatency = 400 * time.Millisecond

// Canned queries recognised by Mock (compared case-insensitively).
const (
	QueryUnknown = "unknown"
	QueryError   = "error"
)

// surnames are appended to the query to build the canned result set.
var surnames = []string{"Chaplinsson", "Håkansson", "Testingsson"}

// Mock is an in-process backend that simulates latency and three outcomes:
// "unknown" yields no records, "error" fails, anything else yields three
// records derived from the query.
type Mock struct {
	Latency time.Duration
}

// Ensure Mock implements Lookuper.
var _ Lookuper = (*Mock)(nil)

// NewMock creates a mock with the given latency. Negative latency is clamped to zero.
func NewMock(latency time.Duration) *Mock {
	if latency < 0 {
		latency = 0
	}
	return &Mock{Latency: latency}
}

// Lookup implements Lookuper. It honours ctx cancellation while waiting.
func (m *Mock) Lookup(ctx context.Context, query string) ([]Record, error) {
	if m.Latency > 0 {
		timer := time.NewTimer(m.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrLookupFailed, ctx.Err())
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	switch strings.ToLower(query) {
	case QueryUnknown:
		return []Record{}, nil
	case QueryError:
		return nil, fmt.Errorf("%w: backend rejected query %q", ErrLookupFailed, query)
	}

	records := make([]Record, 0, len(surnames))
	for i, surname := range surnames {
		records = append(records, Record{
			DisplayName: query + " " + surname,
			ID:          fmt.Sprintf("%d", i+1),
		})
	}
	return records, nil
}
