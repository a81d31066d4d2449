package resource

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/spf13/cobra"
)

var getOutput string

var getCmd = &cobra.Command{
	Use:   "get <collection> <id>",
	Short: "Show one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		resources, resource, user, err := openCollection(ctx, args[0])
		if err != nil {
			return err
		}
		if strings.EqualFold(getOutput, "json") {
			if err := requireAction(rolegate.ActionExportRecords, user); err != nil {
				return err
			}
		}

		ctx, cancel := client.EnsureTimeout(ctx, config.MustFromContext(ctx).RequestTimeout)
		defer cancel()
		record, err := resources.Get(ctx, resource, args[1])
		if err != nil {
			return fmt.Errorf("failed to get %s/%s: %s", resource, args[1], sdk.UserMessage(err))
		}

		if strings.EqualFold(getOutput, "json") {
			return writeJSON(cmd.OutOrStdout(), record)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n", record.Title())
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, field := range sdk.SortFields(record) {
			fmt.Fprintf(w, "%s\t%s\n", field.Key, sdk.FormatValue(field.Value))
		}
		w.Flush()
		return nil
	},
}

func init() {
	getCmd.Flags().StringVarP(&getOutput, "output", "o", "table", "Output format: table or json")
}
