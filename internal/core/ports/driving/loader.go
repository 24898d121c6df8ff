package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// RecordLoader reads the records named on the command line.
type RecordLoader interface {
	// Load reads every record under locations, in order.
	// Unreadable records are reported and skipped.
	// A location that does not exist fails the whole load.
	Load(ctx context.Context, locations []string) ([]domain.RawRecord, []*domain.RecordError, error)
}

// RecordBatchFunc receives records that changed together.
type RecordBatchFunc func(raws []domain.RawRecord, failed []*domain.RecordError)

// RecordWatcher re-reads records when they change.
type RecordWatcher interface {
	// Watch calls fn with each batch of changed records. Changes closer
	// together than debounce are batched. It blocks until ctx ends.
	Watch(ctx context.Context, locations []string, debounce time.Duration, fn RecordBatchFunc) error
}
