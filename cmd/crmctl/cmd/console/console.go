package console

import (
	"errors"
	"fmt"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/rolegate"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/shell"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ConsoleCmd starts the interactive console
var ConsoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive CRM console",
	Long: `Opens a full-screen console. A stored session is restored first; without one
the login form is shown. Navigation is limited to the pages your role unlocks.

Keys: up/down move, enter opens, tab switches focus, / searches, p shows the
profile, r reloads, esc goes back, ctrl+l logs out, ctrl+c quits.

Logs are written to crmctl.log under CRM_HOME.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.MustFromContext(ctx)
		if cfg.NonInteractive {
			return errors.New("the console cannot run in non-interactive mode")
		}

		p := cfg.ClientProvider
		session, err := p.Session(ctx)
		if err != nil {
			return err
		}

		logger := p.Logger().Named("console")
		logger.Info("console starting", zap.String("server", p.ServerURL()))

		model := shell.New(ctx, shell.Options{
			Session:        session,
			Records:        session.Resources(),
			Gate:           rolegate.MustNewGate(),
			Nav:            rolegate.DefaultNav(),
			NotifyInterval: cfg.NotifyInterval,
			Logger:         logger,
		})

		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("console error: %w", err)
		}
		logger.Info("console closed")
		return nil
	},
}
