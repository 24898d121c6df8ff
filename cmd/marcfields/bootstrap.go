package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/custodia-labs/marcfields/internal/adapters/driven/config/file"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/filesource"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/marcxml"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/solr"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/marcfields/internal/adapters/driven/stream"
	"github.com/custodia-labs/marcfields/internal/adapters/driving/cli"
	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/core/services"
	"github.com/custodia-labs/marcfields/internal/extractor"
	"github.com/custodia-labs/marcfields/internal/logger"
	"github.com/custodia-labs/marcfields/internal/rules"
)

// stdout is where the stdout sink writes. Replaced in tests.
var stdout io.Writer = os.Stdout

// bootstrap wires driven adapters into the services the CLI uses.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings from %s: %w", configStore.Path(), err)
	}

	level, err := logger.ParseLevel(settings.Log.Level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(level)
	if opts.Verbose {
		logger.SetVerbose(true)
	}

	rs, err := rules.NewDanMARC2(settings.Rules.Extra...)
	if err != nil {
		return nil, fmt.Errorf("building rules: %w", err)
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" && opts.ConfigDir != "" {
		dataDir = filepath.Join(opts.ConfigDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	sink := settings.Index.Sink
	if opts.Sink != "" {
		sink = opts.Sink
	}
	writer, err := newWriter(sink, settings, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Debug("sink %s, %d workers", sink, settings.Index.Workers)

	loader := services.NewLoadService(filesource.NewSource(os.Stdin), filesource.NewWatcher())

	return &cli.Services{
		Index: services.NewIndexService(
			marcxml.New(),
			extractor.New(rs),
			services.WithWriter(writer),
			services.WithWorkers(settings.Index.Workers),
		),
		Settings: settingsService,
		Rules:    services.NewRuleService(rs),
		Records:  services.NewRecordService(store),
		Loader:   loader,
		Watcher:  loader,
		Close:    store.Close,
	}, nil
}

// newWriter returns the record writer for sink.
func newWriter(sink domain.SinkKind, settings *domain.Settings, store *sqlite.Store) (driven.RecordWriter, error) {
	switch sink {
	case domain.SinkStdout:
		return stream.NewWriter(stdout), nil
	case domain.SinkSQLite:
		return store, nil
	case domain.SinkSolr:
		w, err := solr.NewWriter(solr.Config{
			URL:               settings.Solr.URL,
			Collection:        settings.Solr.Collection,
			RequestsPerSecond: settings.Solr.RequestsPerSecond,
			Burst:             settings.Solr.Burst,
			Timeout:           time.Duration(settings.Solr.TimeoutSeconds) * time.Second,
			CommitWithin:      time.Duration(settings.Solr.CommitWithinMs) * time.Millisecond,
		})
		if err != nil {
			return nil, fmt.Errorf("configuring solr sink: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("%w: unknown sink %q", domain.ErrInvalidInput, sink)
	}
}
