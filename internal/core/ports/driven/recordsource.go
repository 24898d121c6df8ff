package driven

import (
	"context"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// RecordSource reads raw records from where the user keeps them.
type RecordSource interface {
	// Expand resolves a location to the record locations it contains.
	// A directory yields its record files in name order.
	Expand(location string) ([]string, error)

	// Read loads one record.
	Read(ctx context.Context, location string) (*domain.RawRecord, error)
}

// RecordWatcher reports records that change on disk.
type RecordWatcher interface {
	// Watch emits the location of each created or rewritten record until ctx ends.
	// The channel is closed when watching stops.
	Watch(ctx context.Context, locations []string) (<-chan string, error)
}
