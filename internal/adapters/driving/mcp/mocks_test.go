package mcp

import (
	"context"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	record *domain.IndexedRecord
	err    error
	got    *domain.RawRecord
}

func (m *mockIndexService) Extract(_ context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error) {
	m.got = raw
	return m.record, m.err
}

func (m *mockIndexService) Index(_ context.Context, _ *domain.RawRecord, _ domain.FieldSink) error {
	return m.err
}

func (m *mockIndexService) Inspect(_ context.Context, _ *domain.RawRecord) ([]byte, error) {
	return nil, m.err
}

func (m *mockIndexService) IndexAll(_ context.Context, _ []domain.RawRecord) (*domain.IndexReport, error) {
	return &domain.IndexReport{}, m.err
}

// mockRuleService is a mock implementation of driving.RuleService.
type mockRuleService struct {
	rules []domain.RuleDescription
}

func (m *mockRuleService) Describe() []domain.RuleDescription {
	return m.rules
}

func (m *mockRuleService) Formats() []string {
	return []string{"danMARC2"}
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records map[string]*domain.IndexedRecord
	err     error
}

func (m *mockRecordService) Get(_ context.Context, id string) (*domain.IndexedRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockRecordService) List(_ context.Context, _ string) ([]domain.IndexedRecord, error) {
	return nil, m.err
}

func (m *mockRecordService) Delete(_ context.Context, _ string) error {
	return m.err
}

func testRecord() *domain.IndexedRecord {
	return &domain.IndexedRecord{
		ID:     "12345678:870970",
		Format: "danMARC2",
		Fields: domain.Fields{
			{Name: domain.CollectionIdentifierField, Values: []string{"common"}},
			{Name: "marc.001a", Values: []string{"12345678"}},
			{Name: "marc.245a", Values: []string{"Title", "Other"}},
		},
	}
}
