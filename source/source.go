package source

import (
	"context"

	"github.com/poiesic/prospect/core"
)

// Source is the adapter contract every harvested source implements.
//
// A source produces a finite sequence of raw records in a stable order. The
// consolidation pipeline treats a Produce error as a degraded, empty
// contribution from that source; it never aborts the run for the others.
type Source interface {
	// Label returns the human-readable institution label attached to every
	// record this source produces.
	Label() string

	// BaseURL returns the base URL relative record URLs are resolved against.
	BaseURL() string

	// Produce harvests the source and returns its raw records.
	Produce(ctx context.Context) ([]core.RawRecord, error)
}
