// scan.go implements the scan run itself: resolving defaults from the
// optional settings file, validating the request, driving the scan
// engine, and rendering the final report as text or JSON.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mmr-tortoise/portsweep/internal/config"
	"github.com/mmr-tortoise/portsweep/internal/model"
	"github.com/mmr-tortoise/portsweep/internal/scan"
)

// scanFlags holds the flag values for the scan. They are bound to
// cobra flags in NewRootCommand.
type scanFlags struct {
	start       int
	end         int
	concurrency int
}

// runScan is the main logic behind the root command.
func runScan(cmd *cobra.Command, host string, flags *scanFlags) error {
	// Settings file values apply only where the corresponding flag was
	// not given on the command line.
	defaults, err := config.Load(".")
	if err != nil {
		return err
	}
	if defaults.Verbose && !cmd.Flags().Changed("verbose") {
		verbose = true
	}

	req := newScanRequest(host, defaults, *flags, cmd.Flags().Changed)
	if err := req.Validate(); err != nil {
		return model.WrapCLIError(model.ExitBadRequest, "invalid scan request", err)
	}

	VerboseLog("scanning %s ports %d-%d with %d workers", req.Host, req.StartPort, req.EndPort, req.Concurrency)

	events := newConsoleEvents(req.Verbose, cmd.OutOrStdout(), cmd.ErrOrStderr())
	coordinator := scan.NewCoordinator(scan.DialProber{}, events)

	result := coordinator.Run(scan.Params{
		Host:        req.Host,
		StartPort:   req.StartPort,
		EndPort:     req.EndPort,
		Concurrency: req.Concurrency,
		Timeout:     req.Timeout,
	})

	report := buildReport(req.Host, result)
	printReport(cmd.OutOrStdout(), report)
	return nil
}

// newScanRequest merges the three parameter sources in precedence
// order: command-line flags, settings-file defaults, built-in
// defaults. The changed predicate reports whether a flag was given
// explicitly.
func newScanRequest(host string, defaults config.Defaults, flags scanFlags, changed func(string) bool) model.ScanRequest {
	req := model.ScanRequest{
		Host:        host,
		StartPort:   defaults.StartPort,
		EndPort:     defaults.EndPort,
		Concurrency: defaults.Concurrency,
		Timeout:     defaults.Timeout,
		Verbose:     verbose,
	}
	if changed("start") {
		req.StartPort = flags.start
	}
	if changed("end") {
		req.EndPort = flags.end
	}
	if changed("concurrency") {
		req.Concurrency = flags.concurrency
	}
	return req
}

// consoleEvents renders scan notifications as they happen: open-port
// lines on stdout when verbose, per-port diagnostics on stderr always.
// Workers fire these concurrently, so writes are serialized by a lock.
type consoleEvents struct {
	mu      sync.Mutex
	verbose bool
	out     io.Writer
	errOut  io.Writer
}

func newConsoleEvents(verbose bool, out, errOut io.Writer) *consoleEvents {
	return &consoleEvents{verbose: verbose, out: out, errOut: errOut}
}

// PortOpen announces a discovered port immediately, interleaved with
// scan progress and distinct from the final batch report.
func (e *consoleEvents) PortOpen(port int) {
	if !e.verbose {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.out, "Open port found: %d\n", port)
}

// PortError reports a per-port probe anomaly. These lines appear
// regardless of verbosity; the scan itself continues.
func (e *consoleEvents) PortError(port int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fmt.Fprintf(e.errOut, "Error scanning port %d: %v\n", port, err)
}

// buildReport converts an engine result into the caller-facing report,
// sorting the open ports for deterministic output.
func buildReport(host string, result scan.Result) model.ScanReport {
	open := make([]int, len(result.OpenPorts))
	copy(open, result.OpenPorts)
	sort.Ints(open)

	return model.ScanReport{
		Host:           host,
		OpenPorts:      open,
		OpenCount:      len(open),
		ElapsedSeconds: result.Elapsed.Seconds(),
	}
}

// printReport writes the final report in text or JSON form, matching
// the --json flag.
func printReport(out io.Writer, report model.ScanReport) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Fprintln(out, string(data))
		return
	}
	fmt.Fprintf(out, "Open Ports Found - %s\n", FormatPortsList(report.OpenPorts))
	fmt.Fprintf(out, "Time taken - %.2f seconds\n", report.ElapsedSeconds)
}

// FormatPortsList renders a port list as "[22, 80, 443]", or "[]" when
// no ports are open. Exported for testing purposes (see scan_test.go).
func FormatPortsList(ports []int) string {
	if len(ports) == 0 {
		return "[]"
	}
	parts := make([]string, len(ports))
	for i, port := range ports {
		parts[i] = strconv.Itoa(port)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
