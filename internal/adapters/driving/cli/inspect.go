package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/marcfields/internal/core/domain"
)

// Output formats for inspect.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <path>...",
	Short: "Show the fields extracted from records",
	Long: `Extract records and print their fields without writing them anywhere.

On a terminal fields are shown as a table; otherwise as JSON objects that
keep the order fields were produced in. Use --format to choose.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "", "output format: table, json or yaml (default table on a terminal, json otherwise)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if indexService == nil || recordLoader == nil {
		return errors.New("index service not configured")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	format := inspectFormat
	if format == "" {
		format = formatJSON
		if isTerminal(out) {
			format = formatTable
		}
	}
	switch format {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	raws, unreadable, err := recordLoader.Load(ctx, args)
	if err != nil {
		return err
	}
	for _, f := range unreadable {
		failColor.Fprintf(cmd.ErrOrStderr(), "failed %s\n", f.Error()) //nolint:errcheck
	}

	failures := len(unreadable)
	for i := range raws {
		if err := inspectOne(cmd, out, format, &raws[i], i); err != nil {
			failColor.Fprintf(cmd.ErrOrStderr(), "failed %s: %v\n", raws[i].URI, err) //nolint:errcheck
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d records could not be inspected", failures)
	}
	return nil
}

func inspectOne(cmd *cobra.Command, out io.Writer, format string, raw *domain.RawRecord, n int) error {
	ctx := cmd.Context()

	if format == formatTable {
		rec, err := indexService.Extract(ctx, raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s  %s\n", rec.ID, raw.URI)
		fmt.Fprintln(out, renderFieldTable(styles.DefaultStyles(), rec.Fields))
		return nil
	}

	data, err := indexService.Inspect(ctx, raw)
	if err != nil {
		return err
	}

	if format == formatYAML {
		doc, err := yaml.JSONToYAML(data)
		if err != nil {
			return fmt.Errorf("converting to yaml: %w", err)
		}
		if n > 0 {
			fmt.Fprintln(out, "---")
		}
		_, err = out.Write(doc)
		return err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = out.Write(buf.Bytes())
	return err
}

// renderFieldTable renders one row per field value.
func renderFieldTable(s *styles.Styles, fs domain.Fields) string {
	var names []string
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme().Border)).
		Headers("FIELD", "VALUE")

	for _, f := range fs {
		for i, v := range f.Values {
			name := f.Name
			if i > 0 {
				name = ""
			}
			names = append(names, f.Name)
			t.Row(name, v)
		}
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return s.Title.Padding(0, 1)
		case col == 0 && row >= 0 && row < len(names):
			return s.Field(names[row]).Padding(0, 1)
		default:
			return s.FieldValue.Padding(0, 1)
		}
	})
	return t.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
