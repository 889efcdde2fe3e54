// Package cli implements the cobra-based CLI commands for project-merge.
//
// Each subcommand (import, merge, copy-asset, inspect) is defined in its own
// file within this package. This file defines the root command that serves as
// the parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/project-merge/internal/config"
	"github.com/mmr-tortoise/project-merge/internal/merge"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables progress output on stderr, including the merge
	// engine's attempt, commit, and rollback messages.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
//
// Environment variables (see package config) provide the defaults of the
// global and subcommand flags. A malformed environment is reported when a
// command runs, not when the command tree is built.
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := config.Load()

	rootCmd := &cobra.Command{
		Use:   "project-merge",
		Short: "Merge sprites and import them between projects",
		Long: `project-merge combines sprites and imports them across projects while
keeping project-wide variables, lists, and broadcast messages free of duplicates.

Every operation runs as a guarded attempt: the target project is either fully
merged or left exactly as it was.`,

		// We handle error output ourselves (text or JSON based on --json flag).
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return model.WrapCLIError(model.ExitGeneralError, "invalid environment configuration", cfgErr)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", cfg.JSON, "Output in JSON format (env PROJECT_MERGE_JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", cfg.Verbose, "Enable verbose output (env PROJECT_MERGE_VERBOSE)")

	rootCmd.AddCommand(NewImportCommand(cfg))
	rootCmd.AddCommand(NewMergeCommand())
	rootCmd.AddCommand(NewCopyAssetCommand())
	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; merge errors are mapped by
// kind; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if !errors.As(err, &cliErr) {
			cliErr = model.WrapMergeError("command failed", err)
			if cliErr.Code == model.ExitGeneralError {
				cliErr = model.NewCLIError(model.ExitGeneralError, err.Error())
			}
		}
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}
}

// newEngine returns a merge engine whose progress goes to the verbose log.
func newEngine() *merge.Engine {
	return merge.NewEngine(merge.WithLogger(VerboseLog))
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
