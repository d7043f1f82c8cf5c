package model

import (
	"fmt"
	"time"
)

// Port range and tuning defaults. They mirror the conventional CLI
// defaults: the full port space at 500 concurrent workers.
const (
	MinPort = 1
	MaxPort = 65535

	DefaultStartPort   = MinPort
	DefaultEndPort     = MaxPort
	DefaultConcurrency = 500
)

// ScanRequest is the full set of caller-supplied scan parameters. The
// scan engine itself accepts these values literally; Validate is the
// single place where standard TCP port semantics are enforced, and the
// CLI calls it before any scan starts.
type ScanRequest struct {
	// Host is the target to probe. An IPv4 literal is expected but a
	// resolvable hostname is accepted; resolution failures surface as
	// per-port probe errors, not up-front rejections.
	Host string `json:"host"`

	// StartPort and EndPort bound the inclusive range to scan.
	// StartPort > EndPort is a valid empty scan.
	StartPort int `json:"startPort"`
	EndPort   int `json:"endPort"`

	// Concurrency is the exact number of probing workers to run.
	Concurrency int `json:"concurrency"`

	// Timeout bounds each individual connection attempt. Zero selects
	// the engine default of one second.
	Timeout time.Duration `json:"-"`

	// Verbose enables immediate per-port notifications as open ports
	// are discovered.
	Verbose bool `json:"-"`
}

// Validate checks the request against standard TCP port semantics.
//
// A reversed range (StartPort > EndPort) passes validation: the engine
// documents it as an empty successful scan. Non-positive concurrency is
// rejected here because the engine would otherwise spawn zero workers
// and silently scan nothing.
func (r ScanRequest) Validate() error {
	if r.Host == "" {
		return fmt.Errorf("target host must not be empty")
	}
	if r.StartPort < MinPort || r.StartPort > MaxPort {
		return fmt.Errorf("start port %d out of range (%d-%d)", r.StartPort, MinPort, MaxPort)
	}
	if r.EndPort < MinPort || r.EndPort > MaxPort {
		return fmt.Errorf("end port %d out of range (%d-%d)", r.EndPort, MinPort, MaxPort)
	}
	if r.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", r.Concurrency)
	}
	return nil
}

// ScanReport is the final, caller-facing outcome of one scan.
type ScanReport struct {
	// Host is the target that was scanned.
	Host string `json:"host"`

	// OpenPorts lists the ports that accepted a connection, sorted in
	// ascending numeric order for deterministic output.
	OpenPorts []int `json:"openPorts"`

	// OpenCount is len(OpenPorts), included so JSON consumers do not
	// have to count.
	OpenCount int `json:"openCount"`

	// ElapsedSeconds is the wall-clock duration of the whole scan.
	ElapsedSeconds float64 `json:"elapsedSeconds"`
}

// ExitCode defines the portsweep process exit codes.
type ExitCode int

const (
	// ExitSuccess indicates the scan completed, including empty scans.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitBadRequest indicates the scan parameters failed validation
	// (bad port bounds, non-positive concurrency, empty host).
	ExitBadRequest ExitCode = 2

	// ExitConfigError indicates a defaults file was found but could
	// not be read or parsed.
	ExitConfigError ExitCode = 3
)

// CLIError is an error that carries a process exit code. The command
// layer unwraps it in Execute to translate failures into os.Exit codes.
type CLIError struct {
	Code    ExitCode
	Message string
	Err     error
}

// Error returns the message, appending the underlying cause when present.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying error for errors.Is / errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
