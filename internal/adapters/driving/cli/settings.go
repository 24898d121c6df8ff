package cli

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure where records are sent and how they are indexed.

Use subcommands to change a specific setting.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSinkCmd = &cobra.Command{
	Use:   "sink [kind]",
	Short: "Set the index sink",
	Long: `Set where the index and watch commands send records.

Available sinks:
  stdout - One "name<TAB>value" line per field value
  sqlite - Local SQLite database (browse with 'marcfields records')
  solr   - Apache Solr collection (configure with 'marcfields settings solr')

Without an argument the sink is chosen interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsSink,
}

var settingsSolrCmd = &cobra.Command{
	Use:   "solr",
	Short: "Configure the Solr sink",
	Args:  cobra.NoArgs,
	RunE:  runSettingsSolr,
}

var (
	solrURL        string
	solrCollection string
)

// sinkChoices is the order sinks are offered in.
var sinkChoices = []domain.SinkKind{domain.SinkStdout, domain.SinkSQLite, domain.SinkSolr}

func init() {
	settingsSolrCmd.Flags().StringVar(&solrURL, "url", "", "Solr base URL (e.g. http://localhost:8983/solr)")
	settingsSolrCmd.Flags().StringVar(&solrCollection, "collection", "", "Solr collection name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSinkCmd)
	settingsCmd.AddCommand(settingsSolrCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Level: %s\n", settings.Log.Level)
	cmd.Println()

	cmd.Println("[Index]")
	cmd.Printf("  Sink: %s\n", settings.Index.Sink.Description())
	workers := "one per CPU"
	if settings.Index.Workers > 0 {
		workers = strconv.Itoa(settings.Index.Workers)
	}
	cmd.Printf("  Workers: %s\n", workers)
	cmd.Println()

	cmd.Println("[Solr]")
	cmd.Printf("  URL: %s\n", redactURL(settings.Solr.URL))
	collection := settings.Solr.Collection
	if collection == "" {
		collection = "(not set)"
	}
	cmd.Printf("  Collection: %s\n", collection)
	cmd.Printf("  Rate: %.1f requests/s (burst %d)\n", settings.Solr.RequestsPerSecond, settings.Solr.Burst)
	cmd.Printf("  Timeout: %ds\n", settings.Solr.TimeoutSeconds)
	if settings.Solr.CommitWithinMs > 0 {
		cmd.Printf("  Commit within: %dms\n", settings.Solr.CommitWithinMs)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)
	cmd.Println()

	if len(settings.Rules.Extra) > 0 {
		cmd.Println("[Rules]")
		cmd.Printf("  Extra: %s\n", strings.Join(settings.Rules.Extra, " "))
		cmd.Println()
	}

	return nil
}

func runSettingsSink(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var kind domain.SinkKind
	if len(args) == 1 {
		kind = domain.SinkKind(args[0])
	} else {
		kind = promptSink(cmd)
	}

	if err := settingsService.SetSink(kind); err != nil {
		return fmt.Errorf("failed to set sink: %w", err)
	}
	cmd.Printf("Sink set to: %s\n", kind.Description())
	return nil
}

func promptSink(cmd *cobra.Command) domain.SinkKind {
	cmd.Println("Select a sink:")
	for i, k := range sinkChoices {
		cmd.Printf("  %d. %-7s %s\n", i+1, k, k.Description())
	}
	cmd.Print("Choice [1]: ")

	reader := bufio.NewReader(cmd.InOrStdin())
	choice := parseChoice(readLine(reader), len(sinkChoices), 1)
	return sinkChoices[choice-1]
}

func runSettingsSolr(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if solrURL == "" || solrCollection == "" {
		return errors.New("--url and --collection are required")
	}
	if _, err := url.ParseRequestURI(solrURL); err != nil {
		return fmt.Errorf("invalid --url: %w", err)
	}

	if err := settingsService.SetSolr(solrURL, solrCollection); err != nil {
		return fmt.Errorf("failed to configure solr: %w", err)
	}
	cmd.Printf("Solr configured: %s (collection %s)\n", redactURL(solrURL), solrCollection)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// redactURL hides the password of a Solr URL with basic auth credentials.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Redacted()
}
