package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService reads stored records.
type RecordService struct {
	store driven.RecordStore
}

// NewRecordService creates a record service over store.
func NewRecordService(store driven.RecordStore) *RecordService {
	return &RecordService{store: store}
}

// Get retrieves a record by ID.
func (s *RecordService) Get(ctx context.Context, id string) (*domain.IndexedRecord, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	rec, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// List returns records of a batch, or all records when batchID is empty.
func (s *RecordService) List(ctx context.Context, batchID string) ([]domain.IndexedRecord, error) {
	recs, err := s.store.ListRecords(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}

// Delete removes a record.
func (s *RecordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := s.store.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}
