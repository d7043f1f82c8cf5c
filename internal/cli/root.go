// Package cli implements the cobra-based command surface for portsweep.
//
// portsweep is a single-purpose tool, so the root command itself runs
// the scan; there are no subcommands. This file defines the root
// command, the global flags, and the Execute error handler that
// translates CLIError values into process exit codes.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/portsweep/internal/model"
)

// Global flag variables bound to cobra persistent flags on the root
// command.
var (
	// jsonOutput switches the final report to machine-readable JSON.
	jsonOutput bool

	// verbose enables immediate per-port notifications while the scan
	// is running, ahead of the final report.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags and
// injected from the main package for the --version flag output.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. The
// root command runs the scan directly against the positional target
// host argument.
func NewRootCommand() *cobra.Command {
	flags := &scanFlags{}

	rootCmd := &cobra.Command{
		Use:   "portsweep <host>",
		Short: "Fast concurrent TCP port scanner",
		Long: `portsweep determines which TCP ports on a target host accept
connections, probing the port range with a pool of concurrent workers
so that large ranges finish in a fraction of the sequential time.

Each probe is a plain TCP connect bounded by a one-second timeout.
Refused and timed-out ports are silently treated as closed; any other
network failure is reported per port without aborting the scan.

Examples:
  portsweep 192.168.1.2
  portsweep 192.168.1.2 -s 1 -e 1024 -c 100 -V
  portsweep 192.168.1.2 --json`,

		Args: cobra.ExactArgs(1),

		// Errors are formatted by Execute, not by cobra.
		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args[0], flags)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the final report in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Announce each open port as it is found")

	rootCmd.Flags().IntVarP(&flags.start, "start", "s", model.DefaultStartPort, "First port of the range to scan")
	rootCmd.Flags().IntVarP(&flags.end, "end", "e", model.DefaultEndPort, "Last port of the range to scan")
	rootCmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", model.DefaultConcurrency, "Number of concurrent probing workers")

	return rootCmd
}

// Execute runs the root command and handles exit codes. CLIError
// values carry their own code; anything else exits with code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError writes an error to stderr in text or JSON form, matching
// the --json flag. Stdout stays reserved for the scan report.
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

// VerboseLog prints a message to stderr only when verbose mode is
// enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
func IsJSONOutput() bool {
	return jsonOutput
}
