package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/marcfields/internal/adapters/driven/filesource"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/marcxml"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/marcfields/internal/core/services"
	"github.com/custodia-labs/marcfields/internal/extractor"
	"github.com/custodia-labs/marcfields/internal/rules"
)

const testRecord = `<?xml version="1.0" encoding="UTF-8"?>
<marcx:record xmlns:marcx="info:lc/xmlns/marcxchange-v1" format="danMARC2">
  <marcx:datafield ind1="0" ind2="0" tag="001">
    <marcx:subfield code="a">29351120</marcx:subfield>
    <marcx:subfield code="b">870970</marcx:subfield>
    <marcx:subfield code="d">20120404</marcx:subfield>
  </marcx:datafield>
  <marcx:datafield ind1="0" ind2="0" tag="245">
    <marcx:subfield code="a">Stormen over Skagen</marcx:subfield>
  </marcx:datafield>
</marcx:record>
`

const notMarcxRecord = `<?xml version="1.0"?><record><datafield tag="001"/></record>`

// testEnv holds the stores behind the services installed for a test.
type testEnv struct {
	records *memory.RecordStore
	config  *memory.ConfigStore
	dir     string
}

// setupTestServices installs real services over in-memory stores and
// resets command flags. The returned cleanup restores the previous state.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	rs, err := rules.NewDanMARC2()
	require.NoError(t, err)

	env := &testEnv{
		records: memory.NewRecordStore(),
		config:  memory.NewConfigStore(),
		dir:     t.TempDir(),
	}

	loader := services.NewLoadService(filesource.NewSource(strings.NewReader(testRecord)), filesource.NewWatcher())
	SetServices(&Services{
		Index: services.NewIndexService(
			marcxml.New(),
			extractor.New(rs),
			services.WithWriter(env.records),
			services.WithWorkers(2),
		),
		Settings: services.NewSettingsService(env.config),
		Rules:    services.NewRuleService(rs),
		Records:  services.NewRecordService(env.records),
		Loader:   loader,
		Watcher:  loader,
	})
	SetBootstrap(nil)

	inspectFormat = ""
	recordsBatch = ""
	recordsJSON = false
	fieldsJSON = false
	solrURL = ""
	solrCollection = ""
	browseBatch = ""

	t.Cleanup(func() {
		SetServices(nil)
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return env
}

// writeRecord writes content to name inside the test directory.
func (e *testEnv) writeRecord(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}
