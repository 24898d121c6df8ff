package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

var (
	watchDebounce time.Duration
	watchInitial  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>...",
	Short: "Index records whenever they are written",
	Long: `Watch record files and directories and index records as soon as they
are created or rewritten. Writes arriving within --debounce of each other are
indexed together. Runs until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 500*time.Millisecond, "wait this long for writes to settle")
	watchCmd.Flags().BoolVar(&watchInitial, "initial", false, "index existing records before watching")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if indexService == nil || recordLoader == nil || recordWatcher == nil {
		return errors.New("index service not configured")
	}
	ctx := cmd.Context()

	if watchInitial {
		raws, unreadable, err := recordLoader.Load(ctx, args)
		if err != nil {
			return err
		}
		indexBatch(cmd, raws, unreadable)
	}

	cmd.PrintErrf("Watching %d locations, press Ctrl+C to stop\n", len(args))
	return recordWatcher.Watch(ctx, args, watchDebounce, func(raws []domain.RawRecord, failed []*domain.RecordError) {
		indexBatch(cmd, raws, failed)
	})
}

// indexBatch indexes raws and reports; failures never stop watching.
func indexBatch(cmd *cobra.Command, raws []domain.RawRecord, unreadable []*domain.RecordError) {
	report, err := indexService.IndexAll(cmd.Context(), raws)
	if err != nil {
		failColor.Fprintf(cmd.ErrOrStderr(), "indexing: %v\n", err) //nolint:errcheck
		return
	}
	printReport(cmd.ErrOrStderr(), report, append(unreadable, report.Failed...))
}
