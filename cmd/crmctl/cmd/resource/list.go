package resource

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const defaultColumnLimit = 6

var (
	listFilter    string
	listFieldArgs []string
	listColumns   []string
	listOutput    string
)

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List records of a collection",
	Long: `Lists every record of a collection. Filtering happens client-side with a
bexpr expression (--filter) and/or field equality (--field key=value).

Examples:
  crmctl resource list customers
  crmctl resource list issues --field status=open
  crmctl resource list recharges --filter 'method != "CASH"' -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		resources, resource, user, err := openCollection(ctx, args[0])
		if err != nil {
			return err
		}

		output := strings.ToLower(listOutput)
		switch output {
		case "", "table":
		case "json":
			if err := requireAction(rolegate.ActionExportRecords, user); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported output format %q (expected table or json)", listOutput)
		}

		fields, warnings, err := parseFieldArgs(listFieldArgs)
		if err != nil {
			return err
		}
		for _, warning := range warnings {
			pterm.Warning.Println(warning)
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		records, err := resources.List(ctx, resource)
		if err != nil {
			return fmt.Errorf("failed to list %s: %s", resource, sdk.UserMessage(err))
		}

		records, err = sdk.FilterRecords(records, combineFilters(listFilter, fields))
		if err != nil {
			return err
		}

		if output == "json" {
			return writeJSON(cmd.OutOrStdout(), records)
		}
		writeTable(cmd.OutOrStdout(), records, listColumns)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFilter, "filter", "", "bexpr filter expression (e.g. status == \"open\")")
	listCmd.Flags().StringArrayVar(&listFieldArgs, "field", nil, "Filter by field equality (key=value). Converted to bexpr AND expression")
	listCmd.Flags().StringSliceVar(&listColumns, "columns", nil, "Columns to show (default: first 6 scalar fields)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table or json")
}

func writeTable(out io.Writer, records []sdk.Record, columns []string) {
	if len(records) == 0 {
		fmt.Fprintln(out, "No records found")
		return
	}
	if len(columns) == 0 {
		columns = sdk.Columns(records, defaultColumnLimit)
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = strings.ToUpper(col)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, record := range records {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(record[col])
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

func writeJSON(out io.Writer, value any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
