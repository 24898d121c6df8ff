package driving

import (
	"context"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// RecordService reads back records written by batch indexing.
type RecordService interface {
	// Get retrieves a record by ID.
	Get(ctx context.Context, id string) (*domain.IndexedRecord, error)

	// List returns the records of one batch, or all when batchID is empty.
	List(ctx context.Context, batchID string) ([]domain.IndexedRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error
}
