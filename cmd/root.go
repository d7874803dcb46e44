package cmd

import (
	"errors"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"az-group-manager/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (startup failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInvalidConfig indicates the configuration did not validate.
	ExitCodeInvalidConfig = 2
)

// Persistent flags shared by every subcommand.
var (
	rootLogLevel       string
	rootStructuredLogs bool
)

// rootCmd represents the base command for the az-group-manager application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "az-group-manager",
	Short: "Sync Azure AD group membership into Kubernetes",
	Long: `az-group-manager is a Kubernetes operator that watches AzureGroupManager
objects and keeps an AzureGroup object in the same namespace in sync with the
members of the referenced Azure AD group.

Downstream consumers such as policy engines read the AzureGroup objects instead
of calling Microsoft Graph themselves.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
	SilenceUsage: true,
	// Logging starts from the flags alone; serve re-initializes it once the
	// full configuration is known.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogging(config.Config{LogLevel: rootLogLevel, StructuredLogs: rootStructuredLogs})
	},
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
// This function is called by main.main().
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "az-group-manager version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}

	var invalid *multierror.Error
	if errors.As(err, &invalid) {
		return ExitCodeInvalidConfig
	}

	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn or error (env LOG_LEVEL, default info)")
	rootCmd.PersistentFlags().BoolVar(&rootStructuredLogs, "structured-logs", false, "Write logs as JSON (env STRUCTURED_LOGS)")

	rootCmd.AddCommand(newServeCmd(&serveOptions{}))
	rootCmd.AddCommand(newPrintCRDCmd())
	rootCmd.AddCommand(newVersionCmd())
}
