package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/marcfields/internal/core/domain"
)

var fieldsJSON bool

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the extraction rules",
	Long: `List every rule: the MARC tag and subfield it matches and the index
field it produces. Callback rules derive values (record identifiers,
dates, collection identifiers); trigger rules fire once per tag.`,
	Args: cobra.NoArgs,
	RunE: runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "output rules as JSON")
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, _ []string) error {
	if ruleService == nil {
		return errors.New("rule service not configured")
	}

	descs := ruleService.Describe()
	if fieldsJSON {
		data, err := json.MarshalIndent(descs, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal rules: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cmd.Printf("%-10s %-4s %-4s %s\n", "FORMAT", "TAG", "CODE", "FIELD")
	for _, d := range descs {
		target := d.Field
		if d.Kind != domain.RuleField {
			target = "(" + string(d.Kind) + ")"
		}
		code := d.Code
		if code == "" {
			code = "-"
		}
		cmd.Printf("%-10s %-4s %-4s %s\n", d.Format, d.Tag, code, target)
	}
	cmd.Printf("\nTotal: %d rules\n", len(descs))
	return nil
}
