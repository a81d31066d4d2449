package auth

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

var (
	shellFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the session token as environment variables",
	Long: `Export the stored bearer token and API base URL as environment variables
(CRM_AUTH_TOKEN and CRM_API_BASE_URL) for scripts that call the CRM API directly.

Supported shells:
  - posix (bash, zsh, sh) - default
  - fish
  - powershell

Usage:
  # POSIX shells (bash/zsh/sh)
  eval $(crmctl auth export)

  # Fish shell
  eval (crmctl auth export --shell fish)

  # PowerShell
  crmctl auth export --shell powershell | Invoke-Expression

If you are not logged in you will be asked to run 'crmctl auth login'.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&shellFormat, "shell", "", "Shell format: posix, fish, powershell (auto-detected if not specified)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := provider(ctx)
	session, err := p.RequireSession(ctx)
	if err != nil {
		return err
	}

	format := shellFormat
	if format == "" {
		format = detectShell()
	}

	out := cmd.OutOrStdout()
	token, server := session.Token(), p.ServerURL()
	switch strings.ToLower(format) {
	case "posix", "bash", "zsh", "sh":
		printHint(out, "eval $(crmctl auth export)")
		fmt.Fprintf(out, "export CRM_AUTH_TOKEN=%q\n", token)
		fmt.Fprintf(out, "export CRM_API_BASE_URL=%q\n", server)
	case "fish":
		printHint(out, "eval (crmctl auth export --shell fish)")
		fmt.Fprintf(out, "set -x CRM_AUTH_TOKEN %q\n", token)
		fmt.Fprintf(out, "set -x CRM_API_BASE_URL %q\n", server)
	case "powershell", "pwsh", "ps1":
		printHint(out, "crmctl auth export --shell powershell | Invoke-Expression")
		fmt.Fprintf(out, "$env:CRM_AUTH_TOKEN=%q\n", token)
		fmt.Fprintf(out, "$env:CRM_API_BASE_URL=%q\n", server)
	default:
		return fmt.Errorf("unsupported shell format: %s\n\nSupported formats: posix, fish, powershell", format)
	}

	return nil
}

// detectShell attempts to detect the current shell from the SHELL environment variable
func detectShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		return "posix"
	}

	switch filepath.Base(shell) {
	case "fish":
		return "fish"
	case "pwsh", "powershell":
		return "powershell"
	default:
		return "posix"
	}
}

// printHint writes usage instructions to stderr when stdout is a terminal,
// so eval only ever sees the export lines.
func printHint(out io.Writer, usage string) {
	f, ok := out.(*os.File)
	if !ok || !isTerminal(f) {
		return
	}
	fmt.Fprintln(os.Stderr, "# Run this command to configure your environment:")
	fmt.Fprintln(os.Stderr, "#   "+usage)
	fmt.Fprintln(os.Stderr, "")
}

// isTerminal checks if the given file is a terminal (TTY)
func isTerminal(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
