package services

import (
	"fmt"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driven"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
	"github.com/custodia-labs/marcfields/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyLogLevel         = "log.level"
	keyIndexWorkers     = "index.workers"
	keyIndexSink        = "index.sink"
	keySolrURL          = "solr.url"
	keySolrCollection   = "solr.collection"
	keySolrRate         = "solr.requests_per_second"
	keySolrBurst        = "solr.burst"
	keySolrTimeout      = "solr.timeout_seconds"
	keySolrCommitWithin = "solr.commit_within_ms"
	keyStorageDataDir   = "storage.data_dir"
	keyRulesExtra       = "rules.extra"
)

// SettingsService reads and writes application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get returns the current settings, filling unset keys with defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	d := domain.DefaultSettings()

	settings := &domain.Settings{
		Log: domain.LogSettings{
			Level: s.getString(keyLogLevel, d.Log.Level),
		},
		Index: domain.IndexSettings{
			Workers: s.getInt(keyIndexWorkers, d.Index.Workers),
			Sink:    domain.SinkKind(s.getString(keyIndexSink, d.Index.Sink.String())),
		},
		Solr: domain.SolrSettings{
			URL:               s.getString(keySolrURL, d.Solr.URL),
			Collection:        s.getString(keySolrCollection, d.Solr.Collection),
			RequestsPerSecond: s.getFloat(keySolrRate, d.Solr.RequestsPerSecond),
			Burst:             s.getInt(keySolrBurst, d.Solr.Burst),
			TimeoutSeconds:    s.getInt(keySolrTimeout, d.Solr.TimeoutSeconds),
			CommitWithinMs:    s.getInt(keySolrCommitWithin, d.Solr.CommitWithinMs),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Rules: domain.RuleSettings{
			Extra: s.configStore.GetStringSlice(keyRulesExtra),
		},
	}

	if _, err := logger.ParseLevel(settings.Log.Level); err != nil {
		return nil, fmt.Errorf("%s: %w", keyLogLevel, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save persists settings.
func (s *SettingsService) Save(settings *domain.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyLogLevel, settings.Log.Level},
		{keyIndexWorkers, settings.Index.Workers},
		{keyIndexSink, settings.Index.Sink.String()},
		{keySolrURL, settings.Solr.URL},
		{keySolrCollection, settings.Solr.Collection},
		{keySolrRate, settings.Solr.RequestsPerSecond},
		{keySolrBurst, settings.Solr.Burst},
		{keySolrTimeout, settings.Solr.TimeoutSeconds},
		{keySolrCommitWithin, settings.Solr.CommitWithinMs},
		{keyStorageDataDir, settings.Storage.DataDir},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	if len(settings.Rules.Extra) > 0 {
		if err := s.configStore.Set(keyRulesExtra, settings.Rules.Extra); err != nil {
			return fmt.Errorf("save %s: %w", keyRulesExtra, err)
		}
	}
	return nil
}

// SetSink selects the sink for index and watch.
func (s *SettingsService) SetSink(kind domain.SinkKind) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown sink %q", domain.ErrInvalidInput, kind)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Index.Sink = kind
	return s.Save(settings)
}

// SetSolr configures the Solr endpoint and collection.
func (s *SettingsService) SetSolr(url, collection string) error {
	if url == "" || collection == "" {
		return fmt.Errorf("%w: solr url and collection are required", domain.ErrInvalidInput)
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Solr.URL = url
	settings.Solr.Collection = collection
	return s.Save(settings)
}

// getString returns a config value or default.
func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

// getInt returns a config value or default.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

// getFloat returns a config value or default.
func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}
