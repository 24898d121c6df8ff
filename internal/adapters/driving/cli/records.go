package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/adapters/driving/tui/styles"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage stored records",
	Long:  `List, show or delete records stored by the sqlite sink.`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [record-id]",
	Short: "Show the fields of a stored record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsShow,
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete [record-id]",
	Short: "Delete a stored record",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsDelete,
}

var (
	recordsBatch string
	recordsJSON  bool
)

func init() {
	recordsListCmd.Flags().StringVar(&recordsBatch, "batch", "", "only list records from this batch")
	recordsShowCmd.Flags().BoolVar(&recordsJSON, "json", false, "output fields as JSON")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	recs, err := recordService.List(cmd.Context(), recordsBatch)
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if len(recs) == 0 {
		cmd.Println("No records stored.")
		return nil
	}

	for i := range recs {
		cmd.Printf("  %s\n", recs[i].ID)
		cmd.Printf("    Batch:   %s\n", recs[i].BatchID)
		if recs[i].URI != "" {
			cmd.Printf("    URI:     %s\n", recs[i].URI)
		}
		cmd.Printf("    Fields:  %d\n", len(recs[i].Fields))
		cmd.Printf("    Indexed: %s\n", recs[i].IndexedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d records\n", len(recs))
	return nil
}

func runRecordsShow(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	rec, err := recordService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get record: %w", err)
	}

	if recordsJSON {
		data, err := rec.Fields.MarshalJSON()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cmd.Printf("Record: %s\n\n", rec.ID)
	cmd.Printf("  Format:  %s\n", rec.Format)
	cmd.Printf("  Batch:   %s\n", rec.BatchID)
	cmd.Printf("  URI:     %s\n", rec.URI)
	cmd.Printf("  Indexed: %s\n\n", rec.IndexedAt.Format("2006-01-02 15:04:05"))
	cmd.Println(renderFieldTable(styles.DefaultStyles(), rec.Fields))
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errors.New("record service not configured")
	}

	if err := recordService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	cmd.Printf("Deleted record %s\n", args[0])
	return nil
}
