package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

func testInputs() []domain.RawRecord {
	return []domain.RawRecord{
		{ID: "a", URI: "a.xml"},
		{ID: "b", URI: "b.xml"},
		{ID: "c", URI: "c.xml"},
	}
}

func newTestApp(t *testing.T, index *MockIndexService) *App {
	t.Helper()
	ports := NewPorts(index, &MockRecordService{}, &MockRuleService{
		Rules: []domain.RuleDescription{
			{Format: "danMARC2", Tag: "245", Code: "a", Kind: domain.RuleField, Field: "marc.245a"},
		},
	})
	app, err := NewApp(ports, testInputs())
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// loadRecords runs the load command and feeds its result back.
func loadRecords(t *testing.T, app *App) messages.RecordsLoaded {
	t.Helper()
	msg, ok := app.load()().(messages.RecordsLoaded)
	require.True(t, ok)
	app.Update(msg)
	return msg
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{Rules: &MockRuleService{}}, testInputs())

	assert.ErrorIs(t, err, ErrMissingIndexService)
	assert.Nil(t, app)
}

func TestApp_Init(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})

	assert.NotNil(t, app.Init())
}

func TestApp_ViewBeforeReady(t *testing.T) {
	ports := NewPorts(&MockIndexService{}, nil, &MockRuleService{})
	app, err := NewApp(ports, testInputs())
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_LoadExtractsInputs(t *testing.T) {
	index := &MockIndexService{
		ExtractFunc: func(_ context.Context, raw *domain.RawRecord) (*domain.IndexedRecord, error) {
			if raw.ID == "b" {
				return nil, domain.ErrNotMarcxRecord
			}
			return &domain.IndexedRecord{ID: raw.ID, URI: raw.URI}, nil
		},
	}
	app := newTestApp(t, index)

	msg := loadRecords(t, app)

	require.Len(t, msg.Records, 2)
	assert.Equal(t, "a", msg.Records[0].ID)
	assert.Equal(t, "c", msg.Records[1].ID)
	require.Len(t, msg.Failed, 1)
	assert.Equal(t, "b.xml", msg.Failed[0].URI)
	assert.ErrorIs(t, msg.Failed[0], domain.ErrNotMarcxRecord)

	out := app.View()
	assert.Contains(t, out, "2 records")
	assert.Contains(t, out, "1 failed")
}

func TestApp_LoadStoredRecords(t *testing.T) {
	var gotBatch string
	recs := &MockRecordService{
		ListFunc: func(_ context.Context, batchID string) ([]domain.IndexedRecord, error) {
			gotBatch = batchID
			return []domain.IndexedRecord{{ID: "stored"}}, nil
		},
	}
	app, err := NewApp(NewPorts(nil, recs, &MockRuleService{}), nil)
	require.NoError(t, err)
	app.WithBatch("batch-1").SetDimensions(100, 30)

	msg := loadRecords(t, app)

	assert.Equal(t, "batch-1", gotBatch)
	require.Len(t, msg.Records, 1)
	assert.Contains(t, app.View(), "stored")
}

func TestApp_LoadError(t *testing.T) {
	recs := &MockRecordService{
		ListFunc: func(context.Context, string) ([]domain.IndexedRecord, error) {
			return nil, errors.New("database locked")
		},
	}
	app, err := NewApp(NewPorts(nil, recs, &MockRuleService{}), nil)
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	loadRecords(t, app)

	require.Error(t, app.Err())
	assert.Contains(t, app.View(), "database locked")
}

func TestApp_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	index := &MockIndexService{
		ExtractFunc: func(ctx context.Context, _ *domain.RawRecord) (*domain.IndexedRecord, error) {
			return nil, ctx.Err()
		},
	}
	app := newTestApp(t, index)
	app.WithContext(ctx)

	msg := loadRecords(t, app)

	assert.ErrorIs(t, msg.Err, context.Canceled)
	assert.Empty(t, msg.Failed)
}

func TestApp_SelectRecordOpensFields(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})
	loadRecords(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewFields, app.CurrentView())
	assert.Contains(t, app.View(), "b:")

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	app.Update(cmd())
	assert.Equal(t, messages.ViewRecords, app.CurrentView())
}

func TestApp_RulesView(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})
	loadRecords(t, app)

	_, cmd := app.Update(runes("r"))
	require.NotNil(t, cmd)
	app.Update(cmd())

	assert.Equal(t, messages.ViewRules, app.CurrentView())
	assert.Contains(t, app.View(), "marc.245a")
}

func TestApp_Help(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})

	app.Update(runes("?"))
	assert.Contains(t, app.View(), "Keys")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, app.View(), "Keys")
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})

	_, cmd := app.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_Reload(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})
	loadRecords(t, app)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.NotNil(t, cmd)
	assert.IsType(t, messages.RecordsLoaded{}, cmd())
}

func TestApp_ErrorOccurred(t *testing.T) {
	app := newTestApp(t, &MockIndexService{})

	app.Update(messages.ErrorOccurred{Err: errors.New("boom")})

	assert.EqualError(t, app.Err(), "boom")
	assert.Contains(t, app.View(), "boom")
}
