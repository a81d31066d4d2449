package resource

import (
	"errors"
	"fmt"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/pkg/sdk"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <collection> <id>",
	Short: "Delete one record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		resources, resource, user, err := openCollection(ctx, args[0])
		if err != nil {
			return err
		}
		if err := requireAction(rolegate.ActionDeleteRecord, user); err != nil {
			return err
		}

		id := args[1]
		if !deleteYes {
			if cfg.NonInteractive {
				return errors.New("refusing to delete without --yes in non-interactive mode")
			}
			confirmed, err := pterm.DefaultInteractiveConfirm.
				WithDefaultValue(false).
				Show(fmt.Sprintf("Delete %s/%s?", resource, id))
			if err != nil {
				return fmt.Errorf("failed to show interactive prompt: %w", err)
			}
			if !confirmed {
				pterm.Info.Println("Aborted")
				return nil
			}
		}

		ctx, cancel := client.EnsureTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
		if err := resources.Delete(ctx, resource, id); err != nil {
			return fmt.Errorf("failed to delete %s/%s: %s", resource, id, sdk.UserMessage(err))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s/%s\n", resource, id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
