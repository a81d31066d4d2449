package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Rahul675/indyanet-crm/cmd/crmctl/cmd/auth"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/cmd/console"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/cmd/resource"
	internalauth "github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/auth"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/client"
	"github.com/Rahul675/indyanet-crm/cmd/crmctl/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "crmctl.log"

var (
	serverURL      string
	nonInteractive bool
	verbose        bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "crmctl",
	Short: "Indyanet CRM command-line client",
	Long: `crmctl signs in to the Indyanet CRM backend, lists and manages CRM records,
and runs an interactive console with role-gated navigation.

Configuration is read from CRM_* environment variables (and a .env file in the
working directory). Use --server to override CRM_API_BASE_URL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("server") {
			settings.APIBaseURL = serverURL
			settings.Sanitize()
		}
		if nonInteractive {
			settings.NonInteractive = true
		}
		if verbose {
			settings.Verbose = true
		}
		if settings.Home == "" {
			if settings.Home, err = internalauth.DefaultHome(); err != nil {
				return err
			}
		}

		// The console owns the terminal, so it logs to a file.
		toFile := cmd.Name() == console.ConsoleCmd.Name()
		logger, err = newLogger(settings, toFile)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg := &config.GlobalConfig{
			Settings:       settings,
			ServerURL:      settings.APIBaseURL,
			ClientProvider: client.NewProvider(settings.APIBaseURL, settings.Home, settings.RequestTimeout, logger),
		}
		cmd.SetContext(config.InjectConfig(cmd.Context(), cfg))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func newLogger(settings config.Settings, toFile bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if toFile {
		if err := os.MkdirAll(settings.Home, 0700); err != nil {
			return nil, err
		}
		path := filepath.Join(settings.Home, logFile)
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	if settings.Verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3000", "CRM API base URL (overrides CRM_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Disable interactive prompts (also set via CRM_NON_INTERACTIVE=true)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(resource.ResourceCmd)
	rootCmd.AddCommand(console.ConsoleCmd)
}
