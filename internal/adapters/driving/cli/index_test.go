package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

func TestIndexCmd_Use(t *testing.T) {
	assert.Equal(t, "index <path>...", indexCmd.Use)
}

func TestIndexCmd_RequiresPath(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute("index")
	assert.Error(t, err)
}

func TestIndexCmd_WritesRecords(t *testing.T) {
	env := setupTestServices(t)
	path := env.writeRecord(t, "rec.xml", testRecord)

	_, stderr, err := execute("index", path)

	require.NoError(t, err)
	assert.Contains(t, stderr, "Indexed 1 records")

	rec, err := env.records.GetRecord(context.Background(), "29351120:870970")
	require.NoError(t, err)
	assert.Equal(t, []string{"Stormen over Skagen"}, rec.Fields.Get("marc.245a"))
	assert.Equal(t, path, rec.URI)
}

func TestIndexCmd_Stdin(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := execute("index", "-")

	require.NoError(t, err)
	recs, err := env.records.ListRecords(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestIndexCmd_ReportsFailures(t *testing.T) {
	env := setupTestServices(t)
	good := env.writeRecord(t, "good.xml", testRecord)
	bad := env.writeRecord(t, "bad.xml", notMarcxRecord)

	_, stderr, err := execute("index", good, bad)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 records failed")
	assert.Contains(t, stderr, "Indexed 1 records")
	assert.Contains(t, stderr, "failed "+bad)
}

func TestIndexCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	SetServices(nil)

	_, _, err := execute("index", "x.xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	report := &domain.IndexReport{BatchID: "b1", Indexed: 3}
	failed := []*domain.RecordError{{URI: "x.xml", Err: errors.New("boom")}}

	printReport(&buf, report, failed)

	assert.Contains(t, buf.String(), "Indexed 3 records (batch b1)")
	assert.Contains(t, buf.String(), "failed x.xml: boom")
}
