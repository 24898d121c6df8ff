package driving

import "github.com/custodia-labs/marcfields/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings with defaults applied.
	Get() (*domain.Settings, error)

	// Save persists settings.
	Save(settings *domain.Settings) error

	// SetSink selects where index and watch send records.
	SetSink(kind domain.SinkKind) error

	// SetSolr configures the Solr endpoint and collection.
	SetSolr(url, collection string) error
}
