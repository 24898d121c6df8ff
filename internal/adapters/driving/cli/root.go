// Package cli provides the marcfields command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/core/domain"
	"github.com/custodia-labs/marcfields/internal/core/ports/driving"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
	sinkFlag  string
)

// Services aggregates the driving ports the commands use.
type Services struct {
	Index    driving.IndexService
	Settings driving.SettingsService
	Rules    driving.RuleService
	Records  driving.RecordService
	Loader   driving.RecordLoader
	Watcher  driving.RecordWatcher

	// Close releases stores opened while building the services. May be nil.
	Close func() error
}

// Options are the global flags services are built from.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Verbose lowers the log level to debug.
	Verbose bool

	// Sink overrides the configured index sink.
	Sink domain.SinkKind
}

// Bootstrap builds the services once flags are parsed.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

// Services used by commands; nil until bootstrapped.
var (
	indexService    driving.IndexService
	settingsService driving.SettingsService
	ruleService     driving.RuleService
	recordService   driving.RecordService
	recordLoader    driving.RecordLoader
	recordWatcher   driving.RecordWatcher
	closeServices   func() error
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "marcfields",
	Short: "Turn MARCXchange records into search index fields",
	Long: `marcfields extracts search index fields from danMARC2 records in
MARCXchange XML and sends them to standard output, a local SQLite store
or a Solr collection.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.marcfields)")
	rootCmd.PersistentFlags().StringVar(&sinkFlag, "sink", "", "override index.sink (stdout, sqlite, solr)")
}

// Execute runs the root command and releases the services it opened.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeAll(); err == nil {
		err = cerr
	}
	return err
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap sets how services are built before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	indexService = s.Index
	settingsService = s.Settings
	ruleService = s.Rules
	recordService = s.Records
	recordLoader = s.Loader
	recordWatcher = s.Watcher
	closeServices = s.Close
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	if bootstrap == nil || cmd.Annotations[skipBootstrap] == "true" {
		return nil
	}

	sink := domain.SinkKind(sinkFlag)
	if sink != "" && !sink.IsValid() {
		return errors.New("--sink must be one of stdout, sqlite, solr")
	}

	svcs, err := bootstrap(Options{
		ConfigDir: configDir,
		Verbose:   verbose,
		Sink:      sink,
	})
	if err != nil {
		return err
	}
	SetServices(svcs)
	return nil
}

func closeAll() error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}
