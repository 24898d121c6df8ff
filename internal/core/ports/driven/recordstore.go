package driven

import (
	"context"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// RecordWriter receives the extracted fields of whole records.
// Implementations must be safe for concurrent use.
type RecordWriter interface {
	// WriteRecord hands over one record's fields.
	WriteRecord(ctx context.Context, rec *domain.IndexedRecord) error

	// Flush pushes any buffered records to the backend.
	Flush(ctx context.Context) error
}

// RecordStore persists extracted records and reads them back.
type RecordStore interface {
	RecordWriter

	// GetRecord retrieves a record by ID.
	GetRecord(ctx context.Context, id string) (*domain.IndexedRecord, error)

	// ListRecords returns records, optionally restricted to one batch.
	// An empty batchID lists every record.
	ListRecords(ctx context.Context, batchID string) ([]domain.IndexedRecord, error)

	// DeleteRecord removes a record and its fields.
	DeleteRecord(ctx context.Context, id string) error
}
