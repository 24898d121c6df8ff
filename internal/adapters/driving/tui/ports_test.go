package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// MockIndexService implements driving.IndexService for testing.
type MockIndexService struct {
	ExtractFunc func(ctx context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error)
}

func (m *MockIndexService) Extract(ctx context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, raw)
	}
	return &domain.IndexedRecord{ID: raw.ID, URI: raw.URI}, nil
}

func (m *MockIndexService) Index(context.Context, *domain.RawRecord, domain.FieldSink) error {
	return nil
}

func (m *MockIndexService) Inspect(context.Context, *domain.RawRecord) ([]byte, error) {
	return []byte("{}"), nil
}

func (m *MockIndexService) IndexAll(context.Context, []domain.RawRecord) (*domain.IndexReport, error) {
	return &domain.IndexReport{}, nil
}

// MockRecordService implements driving.RecordService for testing.
type MockRecordService struct {
	ListFunc func(ctx context.Context, batchID string) ([]domain.IndexedRecord, error)
}

func (m *MockRecordService) Get(context.Context, string) (*domain.IndexedRecord, error) {
	return nil, domain.ErrNotFound
}

func (m *MockRecordService) List(ctx context.Context, batchID string) ([]domain.IndexedRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, batchID)
	}
	return nil, nil
}

func (m *MockRecordService) Delete(context.Context, string) error {
	return nil
}

// MockRuleService implements driving.RuleService for testing.
type MockRuleService struct {
	Rules []domain.RuleDescription
}

func (m *MockRuleService) Describe() []domain.RuleDescription {
	return m.Rules
}

func (m *MockRuleService) Formats() []string {
	return []string{"danMARC2"}
}

func TestNewPorts(t *testing.T) {
	index := &MockIndexService{}
	recs := &MockRecordService{}
	rules := &MockRuleService{}

	ports := NewPorts(index, recs, rules)

	require.NotNil(t, ports)
	assert.Equal(t, index, ports.Index)
	assert.Equal(t, recs, ports.Records)
	assert.Equal(t, rules, ports.Rules)
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name       string
		ports      *Ports
		extracting bool
		wantErr    error
	}{
		{
			name:       "extracting with index service",
			ports:      &Ports{Index: &MockIndexService{}, Rules: &MockRuleService{}},
			extracting: true,
		},
		{
			name:    "browsing with record service",
			ports:   &Ports{Records: &MockRecordService{}, Rules: &MockRuleService{}},
			wantErr: nil,
		},
		{
			name:    "nil ports",
			ports:   nil,
			wantErr: ErrInvalidPorts,
		},
		{
			name:       "missing rules",
			ports:      &Ports{Index: &MockIndexService{}},
			extracting: true,
			wantErr:    ErrMissingRuleService,
		},
		{
			name:       "extracting without index service",
			ports:      &Ports{Records: &MockRecordService{}, Rules: &MockRuleService{}},
			extracting: true,
			wantErr:    ErrMissingIndexService,
		},
		{
			name:    "browsing without record service",
			ports:   &Ports{Index: &MockIndexService{}, Rules: &MockRuleService{}},
			wantErr: ErrMissingRecordService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate(tt.extracting)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
