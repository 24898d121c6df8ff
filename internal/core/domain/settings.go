package domain

import "fmt"

// SinkKind selects where the index and watch commands send records.
type SinkKind string

// Available sinks.
const (
	// SinkStdout prints one "name<TAB>value" line per field value.
	SinkStdout SinkKind = "stdout"

	// SinkSQLite stores records in the local SQLite database.
	SinkSQLite SinkKind = "sqlite"

	// SinkSolr posts records to a Solr collection.
	SinkSolr SinkKind = "solr"
)

// IsValid returns true if the sink is recognised.
func (k SinkKind) IsValid() bool {
	switch k {
	case SinkStdout, SinkSQLite, SinkSolr:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k SinkKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the sink.
func (k SinkKind) Description() string {
	switch k {
	case SinkStdout:
		return "Standard output (tab separated)"
	case SinkSQLite:
		return "Local SQLite database"
	case SinkSolr:
		return "Apache Solr collection"
	default:
		return "Unknown"
	}
}

// Settings is the application configuration.
type Settings struct {
	Log     LogSettings
	Index   IndexSettings
	Solr    SolrSettings
	Storage StorageSettings
	Rules   RuleSettings
}

// LogSettings configures the logger.
type LogSettings struct {
	// Level is one of trace, debug, info, warn, error.
	Level string
}

// IndexSettings configures batch indexing.
type IndexSettings struct {
	// Workers bounds concurrent extractions; 0 means one per CPU.
	Workers int

	// Sink is where records go.
	Sink SinkKind
}

// SolrSettings configures the Solr sink.
type SolrSettings struct {
	URL               string
	Collection        string
	RequestsPerSecond float64
	Burst             int
	TimeoutSeconds    int
	CommitWithinMs    int
}

// StorageSettings configures the SQLite sink.
type StorageSettings struct {
	// DataDir holds records.db; empty means ~/.marcfields/data.
	DataDir string
}

// RuleSettings extends the built-in danMARC2 rules.
type RuleSettings struct {
	// Extra are additional 4-character direct field specifiers.
	Extra []string
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Log:   LogSettings{Level: "warn"},
		Index: IndexSettings{Sink: SinkStdout},
		Solr: SolrSettings{
			URL:               "http://localhost:8983/solr",
			RequestsPerSecond: 5,
			Burst:             10,
			TimeoutSeconds:    30,
		},
	}
}

// Validate checks that the selected sink is usable.
func (s *Settings) Validate() error {
	if !s.Index.Sink.IsValid() {
		return fmt.Errorf("%w: unknown sink %q", ErrInvalidInput, s.Index.Sink)
	}
	if s.Index.Workers < 0 {
		return fmt.Errorf("%w: index.workers must not be negative", ErrInvalidInput)
	}
	if s.Index.Sink == SinkSolr && s.Solr.Collection == "" {
		return fmt.Errorf("%w: solr.collection is required for the solr sink", ErrInvalidInput)
	}
	return nil
}
