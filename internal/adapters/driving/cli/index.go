package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
)

var indexCmd = &cobra.Command{
	Use:   "index <path>...",
	Short: "Extract fields from records and send them to the sink",
	Long: `Extract index fields from MARCXchange records and write them to the
configured sink (index.sink, or --sink).

Each path may be a record file, a directory of record files (*.xml,
*.xml.gz) or "-" for standard input. Records are extracted concurrently;
records that fail are reported and the rest are still written.

Examples:
  marcfields index record.xml
  marcfields index --sink sqlite dumps/
  cat record.xml | marcfields index -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if indexService == nil || recordLoader == nil {
		return errors.New("index service not configured")
	}
	ctx := cmd.Context()

	raws, unreadable, err := recordLoader.Load(ctx, args)
	if err != nil {
		return err
	}

	report, err := indexService.IndexAll(ctx, raws)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}

	failed := append(unreadable, report.Failed...)
	printReport(cmd.ErrOrStderr(), report, failed)

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d records failed", len(failed), len(raws)+len(unreadable))
	}
	return nil
}

func printReport(w io.Writer, report *domain.IndexReport, failed []*domain.RecordError) {
	okColor.Fprintf(w, "Indexed %d records", report.Indexed) //nolint:errcheck
	fmt.Fprintf(w, " (batch %s)\n", report.BatchID)
	for _, f := range failed {
		failColor.Fprintf(w, "  failed %s\n", f.Error()) //nolint:errcheck
	}
}
