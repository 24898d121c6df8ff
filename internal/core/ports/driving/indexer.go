package driving

import (
	"context"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// IndexService turns MARCXchange records into search index fields.
type IndexService interface {
	// Extract parses a record and returns its fields without emitting them.
	Extract(ctx context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error)

	// Index extracts a record and pushes every field value to sink.
	// Nothing reaches sink when extraction fails.
	Index(ctx context.Context, raw *domain.RawRecord, sink domain.FieldSink) error

	// Inspect extracts a record and returns its fields as a JSON object.
	Inspect(ctx context.Context, raw *domain.RawRecord) ([]byte, error)

	// IndexAll extracts records concurrently and writes each to the configured writer.
	// Failed records are reported, they do not stop the batch.
	IndexAll(ctx context.Context, raws []domain.RawRecord) (*domain.IndexReport, error)
}
