package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

var browseBatch string

var browseCmd = &cobra.Command{
	Use:   "browse [path...]",
	Short: "Browse extracted fields in the terminal UI",
	Long: `Open the interactive field browser.

With paths, the records are extracted and shown without being written.
Without paths, records stored by earlier runs with the sqlite sink are shown.

Controls:
  ↑/k, ↓/j - Navigate records
  Enter    - Show fields
  J        - Toggle JSON
  r        - Show rules
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browseBatch, "batch", "", "only show stored records from this batch")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("browser crashed: %v", r)
		}
	}()

	if ruleService == nil {
		return errors.New("rule service not configured")
	}

	var raws []domain.RawRecord
	if len(args) > 0 {
		if recordLoader == nil {
			return errors.New("record loader not configured")
		}
		var unreadable []*domain.RecordError
		raws, unreadable, err = recordLoader.Load(cmd.Context(), args)
		if err != nil {
			return err
		}
		for _, f := range unreadable {
			failColor.Fprintf(cmd.ErrOrStderr(), "failed %s\n", f.Error()) //nolint:errcheck
		}
		if len(raws) == 0 {
			return errors.New("no readable records")
		}
	}

	app, err := tui.NewApp(tui.NewPorts(indexService, recordService, ruleService), raws)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context()).WithBatch(browseBatch)

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
