package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

func indexTestRecord(t *testing.T, env *testEnv) {
	t.Helper()
	path := env.writeRecord(t, "rec.xml", testRecord)
	_, _, err := execute("index", path)
	require.NoError(t, err)
}

func TestRecordsList_Empty(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute("records", "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No records stored.")
}

func TestRecordsList(t *testing.T) {
	env := setupTestServices(t)
	indexTestRecord(t, env)

	stdout, _, err := execute("records", "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "29351120:870970")
	assert.Contains(t, stdout, "Fields:  6")
	assert.Contains(t, stdout, "Total: 1 records")
}

func TestRecordsList_OtherBatch(t *testing.T) {
	env := setupTestServices(t)
	indexTestRecord(t, env)

	stdout, _, err := execute("records", "list", "--batch", "no-such-batch")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No records stored.")
}

func TestRecordsShow(t *testing.T) {
	env := setupTestServices(t)
	indexTestRecord(t, env)

	stdout, _, err := execute("records", "show", "29351120:870970")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Record: 29351120:870970")
	assert.Contains(t, stdout, "Format:  danMARC2")
	assert.Contains(t, stdout, "Stormen over Skagen")
}

func TestRecordsShow_JSON(t *testing.T) {
	env := setupTestServices(t)
	indexTestRecord(t, env)

	stdout, _, err := execute("records", "show", "--json", "29351120:870970")

	require.NoError(t, err)
	assert.Contains(t, stdout, `"marc.245a":["Stormen over Skagen"]`)
}

func TestRecordsShow_NotFound(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute("records", "show", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordsDelete(t *testing.T) {
	env := setupTestServices(t)
	indexTestRecord(t, env)

	stdout, _, err := execute("records", "delete", "29351120:870970")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted record 29351120:870970")
	_, err = env.records.GetRecord(context.Background(), "29351120:870970")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordsCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	for _, args := range [][]string{
		{"records", "list"},
		{"records", "show", "x"},
		{"records", "delete", "x"},
	} {
		_, _, err := execute(args...)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "record service not configured")
	}
}
