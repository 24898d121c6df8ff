package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
// Records are listed in the order they were first written.
type RecordStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]domain.IndexedRecord
	now     func() time.Time
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]domain.IndexedRecord),
		now:     time.Now,
	}
}

// WriteRecord stores or replaces a record.
func (s *RecordStore) WriteRecord(_ context.Context, rec *domain.IndexedRecord) error {
	if rec == nil || rec.ID == "" {
		return domain.ErrInvalidInput
	}
	stored := *rec
	stored.Fields = cloneFields(rec.Fields)
	if stored.IndexedAt.IsZero() {
		stored.IndexedAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	s.records[rec.ID] = stored
	return nil
}

// Flush is a no-op; writes are immediate.
func (s *RecordStore) Flush(_ context.Context) error {
	return nil
}

// GetRecord retrieves a record by ID.
func (s *RecordStore) GetRecord(_ context.Context, id string) (*domain.IndexedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.Fields = cloneFields(rec.Fields)
	return &rec, nil
}

// ListRecords returns records for a batch, or all records when batchID is empty.
func (s *RecordStore) ListRecords(_ context.Context, batchID string) ([]domain.IndexedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.IndexedRecord
	for _, id := range s.order {
		rec := s.records[id]
		if batchID != "" && rec.BatchID != batchID {
			continue
		}
		rec.Fields = cloneFields(rec.Fields)
		result = append(result, rec)
	}
	return result, nil
}

// DeleteRecord removes a record.
func (s *RecordStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

func cloneFields(fs domain.Fields) domain.Fields {
	if fs == nil {
		return nil
	}
	out := make(domain.Fields, len(fs))
	for i, f := range fs {
		out[i] = domain.Field{Name: f.Name, Values: slices.Clone(f.Values)}
	}
	return out
}
